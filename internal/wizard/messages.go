package wizard

import (
	"fmt"
	"strings"
)

// Messages holds the fixed user-facing notices.
type Messages struct {
	// ServerErrorPrefix precedes the server's error text or the status text.
	ServerErrorPrefix string
	Unavailable       string
	// Communication is a format string taking the underlying error message.
	Communication string
	NoResult      string
}

var (
	MessagesEN = Messages{
		ServerErrorPrefix: "Error fetching suggestions: ",
		Unavailable:       "The API server is not available. Please try again later.",
		Communication:     "Error communicating with the server: %s. Check the logs for details.",
		NoResult:          "No suggestions were returned by the server.",
	}
	MessagesPT = Messages{
		ServerErrorPrefix: "Erro ao obter sugestões: ",
		Unavailable:       "O servidor de API não está disponível. Por favor, tente novamente mais tarde.",
		Communication:     "Erro de comunicação com o servidor: %s. Verifique a consola para mais detalhes.",
		NoResult:          "Nenhuma sugestão foi recebida do servidor.",
	}
)

// MessagesFor returns the notices for a locale tag such as "pt" or "pt-PT".
// Unknown locales get English.
func MessagesFor(locale string) Messages {
	l := strings.ToLower(strings.TrimSpace(locale))
	if l == "pt" || strings.HasPrefix(l, "pt-") || strings.HasPrefix(l, "pt_") {
		return MessagesPT
	}
	return MessagesEN
}

// Locales lists the locale tags with dedicated notices.
func Locales() []string { return []string{"en", "pt"} }

func (m Messages) serverError(detail string) string {
	return m.ServerErrorPrefix + detail
}

func (m Messages) communication(err error) string {
	return fmt.Sprintf(m.Communication, err.Error())
}
