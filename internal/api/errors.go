package api

// Fixed user-facing messages. The raw transport error is kept as the
// wrapped cause and never shown directly.
const (
	msgUnreachable   = "Unable to reach the server"
	msgServerGeneric = "The request could not be completed"
)

type Kind int

const (
	// KindTransport covers connectivity failures: no HTTP response was
	// received at all.
	KindTransport Kind = iota + 1
	// KindServer covers responses the backend answered with an error
	// status.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func transportError(cause error) *Error {
	return &Error{Kind: KindTransport, Message: msgUnreachable, cause: cause}
}

// serverError surfaces the backend's own message field when present.
func serverError(status int, payload any) *Error {
	message := msgServerGeneric
	if m, ok := payload.(map[string]any); ok {
		for _, key := range []string{"message", "error"} {
			if s, ok := m[key].(string); ok && s != "" {
				message = s
				break
			}
		}
	}
	return &Error{Kind: KindServer, Status: status, Message: message}
}
