package npm

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// VerifyIntegrity checks a downloaded tarball against the registry's
// Subresource Integrity string, falling back to the legacy sha1 shasum. A
// dist with neither passes.
func VerifyIntegrity(path string, d Dist) error {
	if d.Integrity != "" {
		for _, entry := range strings.Fields(d.Integrity) {
			algo, want, ok := strings.Cut(entry, "-")
			if !ok {
				continue
			}
			h := newHash(algo)
			if h == nil {
				continue
			}
			if err := hashFile(path, h); err != nil {
				return err
			}
			got := base64.StdEncoding.EncodeToString(h.Sum(nil))
			if got != want {
				return fmt.Errorf("integrity mismatch for %s: expected %s, got %s-%s", path, entry, algo, got)
			}
			return nil
		}
	}

	if d.Shasum != "" {
		h := sha1.New()
		if err := hashFile(path, h); err != nil {
			return err
		}
		got := hex.EncodeToString(h.Sum(nil))
		if !strings.EqualFold(got, d.Shasum) {
			return fmt.Errorf("checksum mismatch for %s: expected %s, got %s", path, d.Shasum, got)
		}
	}
	return nil
}

func newHash(algo string) hash.Hash {
	switch algo {
	case "sha512":
		return sha512.New()
	case "sha384":
		return sha512.New384()
	case "sha256":
		return sha256.New()
	default:
		return nil
	}
}

func hashFile(path string, h hash.Hash) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s for checksum: %w", path, err)
	}
	defer f.Close()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("computing checksum: %w", err)
	}
	return nil
}
