package views

// Notifier recibe los mensajes de error de las mutaciones. La vista no
// reintenta nada: muestra el mensaje y deja el estado local como estaba.
type Notifier interface {
	Notify(message string)
}

// Confirmation es el resultado tipado de un diálogo de confirmación, con el
// texto capturado cuando el diálogo pide justificación.
type Confirmation struct {
	Confirmed bool
	Input     string
}

// Confirmer pide confirmación antes de una acción destructiva. Sustituye a
// los diálogos bloqueantes del navegador del sistema original.
type Confirmer interface {
	Confirm(prompt string) Confirmation
}

// AlwaysConfirm confirma todo sin preguntar, útil en pruebas y en modo
// no interactivo.
type AlwaysConfirm struct {
	Text string
}

func (a AlwaysConfirm) Confirm(string) Confirmation {
	return Confirmation{Confirmed: true, Input: a.Text}
}
