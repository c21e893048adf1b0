/*
Package testutil provides test fixtures for the scoring API.

It generates valid request envelopes with correctly signed tokens so tests
can focus on the behavior under test instead of digest bookkeeping.

# Envelope Generators

	// A valid, authenticated online_score envelope
	body := testutil.NewEnvelope(
	    testutil.WithMethod("online_score"),
	    testutil.WithArguments(map[string]any{"phone": "79175002040", "email": "a@b"}),
	)

	// An admin envelope; the token is minted for time.Now()
	body := testutil.NewEnvelope(testutil.AsAdmin())

Unless overridden with WithToken, envelopes carry a token matching their
account and login.
*/
package testutil
