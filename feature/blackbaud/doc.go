// Package blackbaud reconciles constituents and creates gifts in Raiser's Edge NXT
// through the SKY API.
//
// # Constituents
//
// A constituent is identified by its id, else searched by lookup id, else by
// email. Zero results create a new constituent (a last name is required) with
// the supplied address, email, phone and online presence embedded. One result
// is updated: top-level fields are patched, then each supplied contact record
// is matched against the existing ones of its type:
//
//	address          address_lines, city, postal_code, state
//	email            address
//	online presence  address
//	phone            number (digits only)
//
// Unmatched records are created (as primary when they are the first of their
// type). Matched records are patched only when inactive or when a flag, the
// type, or a requested primary flag differs.
//
// Contact record failures do not stop the other types. They are folded into
// one fault at the end: fatal when any failure is fatal, else retryable.
//
// # Gifts
//
// CreateGift reconciles the donor first when the payload carries constituent
// fields, else it requires a constituent id.
package blackbaud
