package session

import "testing"

// FuzzDecodeRecord feeds arbitrary bytes to the record decoder.
// Goal: no panics; anything accepted re-encodes to an equal principal.
func FuzzDecodeRecord(f *testing.F) {
	f.Add([]byte(`{"email":"admin@pentaledger.com","name":"Admin User","role":"admin"}`))
	f.Add([]byte(`{"email":"","role":"user"}`))
	f.Add([]byte(`null`))
	f.Add([]byte{})
	f.Add([]byte(`{"email":"a","role":"ADMIN"}`))

	f.Fuzz(func(t *testing.T, data []byte) {
		p, err := DecodeRecord(data)
		if err != nil {
			return
		}
		enc, err := EncodeRecord(p)
		if err != nil {
			t.Fatalf("decoded principal failed to encode: %v", err)
		}
		back, err := DecodeRecord(enc)
		if err != nil {
			t.Fatalf("re-decode failed: %v", err)
		}
		if back != p {
			t.Fatalf("round trip mismatch: %+v vs %+v", back, p)
		}
	})
}
