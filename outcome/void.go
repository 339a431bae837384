package outcome

// Void is an outcome that carries no value: it is either a success or an
// error. The zero value is a success.
type Void struct {
	err error
}

// OK returns a successful void outcome.
func OK() Void {
	return Void{}
}

// Fail returns a failed void outcome. Panics on a nil error.
func Fail(err error) Void {
	if err == nil {
		panic("outcome: Fail with nil error")
	}
	return Void{err: err}
}

// VoidOf bridges a conventional error return into a void outcome.
func VoidOf(err error) Void {
	return Void{err: err}
}

// IsOk reports success.
func (v Void) IsOk() bool {
	return v.err == nil
}

// IsErr reports failure.
func (v Void) IsErr() bool {
	return v.err != nil
}

// Err returns the carried error, or nil on success.
func (v Void) Err() error {
	return v.err
}

// Unwrap panics with the carried error on failure; a no-op on success.
func (v Void) Unwrap() {
	if v.err != nil {
		panic(v.err)
	}
}

// Recover turns a failed outcome into a success; successes pass through.
func (v Void) Recover() Void {
	return Void{}
}

// ContinueWith chains f after v: a failure propagates without calling f,
// otherwise f runs with a panic guard. Panics if f is nil.
func (v Void) ContinueWith(f func() error) Void {
	if f == nil {
		panic("outcome: ContinueWith with nil func")
	}
	if v.err != nil {
		return v
	}
	return Void{err: capture(f)}
}

// Match calls failure with the carried error on failure and success
// otherwise; it returns nothing. Panics if either callback is nil.
func (v Void) Match(success func(), failure func(error)) {
	if success == nil || failure == nil {
		panic("outcome: Match with nil callback")
	}
	if v.err != nil {
		failure(v.err)
		return
	}
	success()
}
