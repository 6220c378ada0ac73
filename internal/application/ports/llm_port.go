package ports

import "context"

// TextGenerator define el puerto de salida hacia el servicio de generación de texto (LLM).
// Cualquier adaptador (Gemini, Anthropic, mock) debe implementar esta interfaz.
// La respuesta ya viene tipada: un fallo del proveedor es un error, nunca un texto con prefijo.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Connectivity verifica si hay salida a internet antes de llamar al LLM.
type Connectivity interface {
	Online(ctx context.Context) bool
}
