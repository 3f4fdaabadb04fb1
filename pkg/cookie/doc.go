// Package cookie writes and reads HTTP cookies that are plain, signed
// (HMAC-SHA256) or encrypted (AES-256-GCM), plus one-time flash cookies
// holding JSON values.
//
// A Manager is created with one or more secrets of at least 32 characters.
// The first secret writes; every secret is tried on read, so secrets can be
// rotated by prepending a new one:
//
//	m, err := cookie.New([]string{newSecret, oldSecret}, cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//	_ = m.SetFlash(w, "notifications", items)
//
//	var items []flash.Item
//	err = m.PopFlash(w, r, "notifications", &items) // deletes the cookie
//
// Errors are sentinel values (ErrCookieNotFound, ErrInvalidSignature, ...)
// suitable for errors.Is.
package cookie
