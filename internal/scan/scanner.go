// Package scan turns the continuously-firing QR decode callback into a
// disciplined stream, and gates ledger mutation behind an Idle/Processing
// state machine so each distinct voucher is acted on at most once no matter
// how often the scanner repeats it.
package scan

import "context"

// Scanner is the external camera/decoder collaborator. onDecoded may fire
// repeatedly for the same physical code; nothing here assumes one callback
// per scan.
type Scanner interface {
	Start(onDecoded func(text string), onError func(err error)) error
	Stop()
}

// Subscribe starts the scanner and adapts its callbacks into channels.
// Cancelling ctx stops the scanner. Decoded strings that arrive while the
// consumer is busy are dropped; the scanner keeps repeating a code that is
// still in front of the camera, so drops are harmless.
func Subscribe(ctx context.Context, s Scanner) (<-chan string, <-chan error, error) {
	texts := make(chan string, 16)
	errs := make(chan error, 1)

	err := s.Start(
		func(text string) {
			select {
			case texts <- text:
			default:
			}
		},
		func(err error) {
			select {
			case errs <- err:
			default:
			}
		},
	)
	if err != nil {
		return nil, nil, err
	}

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return texts, errs, nil
}
