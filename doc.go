// Package pastemyst provides a Go client for the PasteMyst paste service
// (https://paste.myst.rs), API v2.
//
// # Quick Start
//
//	c := pastemyst.New()
//
//	paste, err := c.GetPaste(context.Background(), "hipfqanx")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(paste.Title, len(paste.Pasties))
//
// # Creating Pastes
//
//	paste, err := c.CreatePaste(ctx, pastemyst.CreatePasteRequest{
//		Title:     "hello",
//		ExpiresIn: pastemyst.ExpiresOneDay,
//		Pasties: []pastemyst.Pasty{
//			{Title: "main.go", Language: "Go", Code: "package main"},
//		},
//	})
//
// # Authentication
//
// Editing and deleting pastes, creating account-owned pastes and reading
// your private pastes require a token from
// https://paste.myst.rs/user/settings:
//
//	c := pastemyst.New(pastemyst.WithToken(token))
//
// The token is attached per request and never stored anywhere else.
//
// # Blocking and Non-Blocking Forms
//
// Every operation has a blocking form and an Async twin returning a
// [Future]. Both run the exact same request-building and decoding code, so
// results and error kinds are identical across the two forms:
//
//	fut := c.GetPasteAsync(ctx, "hipfqanx")
//	// ... other work ...
//	paste, err := fut.Wait(ctx)
//
// Cancelling the operation's context aborts the in-flight request.
//
// # Error Handling
//
// Failures carry an [ErrorCode] checked with the Is* predicates:
//
//	paste, err := c.GetPaste(ctx, id)
//	if pastemyst.IsNotFound(err) {
//		// unknown id, or a private paste the token doesn't own
//	}
//
// The client never retries and never logs; transport faults surface
// unmodified as [ErrTransport].
//
// # Related Packages
//
// Package language answers which languages PasteMyst highlights, from a
// compiled-in table. Package expires parses human expiration expressions
// like "2h" and resolves them to absolute timestamps without the network.
package pastemyst
