package probe

import "fmt"

// TransportError is an HTTP probe failure below the status-code level:
// dial, TLS, timeout, or the redirect cap. It is logged, never fatal.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("http probe %s: %v", e.URL, e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }

// ResolutionError reports that a host did not resolve.
type ResolutionError struct {
	Host string
	Err  error
}

func (e *ResolutionError) Error() string { return fmt.Sprintf("dns lookup %s: %v", e.Host, e.Err) }

func (e *ResolutionError) Unwrap() error { return e.Err }

// RegistrationError reports a WHOIS lookup that produced no usable
// record: no server is known for the TLD, the query failed, or the
// registry answered with nothing.
type RegistrationError struct {
	Host   string
	Reason string
	Err    error
}

func (e *RegistrationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("whois lookup %s: %s: %v", e.Host, e.Reason, e.Err)
	}
	return fmt.Sprintf("whois lookup %s: %s", e.Host, e.Reason)
}

func (e *RegistrationError) Unwrap() error { return e.Err }
