package winauth

import "context"

// CredentialValidator answers whether a username/password pair is valid
// against a domain of record, typically a directory service. A failed login
// is (false, nil); an unreachable backend is an error. The manager never
// folds the two together.
//
// Calls may block on network I/O; the manager holds no locks while calling.
type CredentialValidator interface {
	Check(ctx context.Context, username, password, domain string) (bool, error)
}

// CredentialValidatorFunc adapts a plain function to [CredentialValidator].
type CredentialValidatorFunc func(ctx context.Context, username, password, domain string) (bool, error)

func (f CredentialValidatorFunc) Check(ctx context.Context, username, password, domain string) (bool, error) {
	return f(ctx, username, password, domain)
}
