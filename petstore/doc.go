// Package petstore is a small client for a pet-lookup API: given a pet name
// it fetches the pet's card (number, image, moves) over HTTP.
//
// The client is deliberately thin. One Fetch is one attempt: there are no
// retries, no caching and no request de-duplication, so it composes cleanly
// with the asyncstate machine that tracks its lifecycle.
//
// # Usage
//
//	client := petstore.New("https://petstore.example.com")
//
//	pet, err := client.Fetch(ctx, "pikachu")
//	switch {
//	case errors.Is(err, petstore.ErrNotFound):
//	    // unknown pet name
//	case err != nil:
//	    // transport or server failure
//	default:
//	    fmt.Println(pet.Name, pet.Number)
//	}
//
// # Error Handling
//
// Unknown names are reported with ErrNotFound so callers can distinguish
// "no such pet" from transport failures, which are wrapped with context.
// Responses are decoded tolerantly with gjson: extra fields are ignored and
// a missing pet payload maps to ErrMalformedResponse.
package petstore
