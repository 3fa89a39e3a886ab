package protocol

// Result is the uniform outcome of a rule-level operation. Illegal moves are
// expected and reported here, never as errors or panics; infra failures
// (I/O, encoding) use ordinary error returns instead.
type Result struct {
	OK      bool   `json:"ok"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func Ok(message string) Result {
	return Result{OK: true, Message: message}
}

func Deny(code, message string) Result {
	return Result{Code: code, Message: message}
}
