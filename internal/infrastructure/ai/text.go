package ai

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoAPIKey el proveedor no tiene API key configurada.
var ErrNoAPIKey = errors.New("AI: API key no configurada")

// systemPrompt rol del modelo para los textos del punto de venta.
const systemPrompt = `You are the assistant of a small Nigerian business point-of-sale system.
Write plain text only: no markdown, no code blocks, no emojis.
Use the exact amounts and currency symbol you are given; never invent items, prices or totals.
If you cannot complete the request, answer with a single line starting with "Error:" followed by the reason.`

// errorSentinel prefijo con el que el modelo señala que no pudo responder.
const errorSentinel = "Error:"

// toResult convierte el texto del modelo en resultado tipado: el prefijo "Error:" pasa a ser error
// y nunca llega a la capa de aplicación como texto.
func toResult(provider, raw string) (string, error) {
	text := stripMarkdownFence(strings.TrimSpace(raw))
	if text == "" {
		return "", fmt.Errorf("AI: %s devolvió respuesta vacía", provider)
	}
	if strings.HasPrefix(text, errorSentinel) {
		return "", fmt.Errorf("AI: %s: %s", provider, strings.TrimSpace(strings.TrimPrefix(text, errorSentinel)))
	}
	return text, nil
}

// stripMarkdownFence quita un bloque ``` ... ``` si el modelo lo añadió pese a la instrucción.
func stripMarkdownFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	after := text[3:]
	if nl := strings.Index(after, "\n"); nl != -1 {
		after = after[nl+1:]
	}
	if end := strings.LastIndex(after, "```"); end != -1 {
		after = after[:end]
	}
	return strings.TrimSpace(after)
}
