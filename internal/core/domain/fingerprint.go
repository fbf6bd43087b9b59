package domain

import (
	"errors"
	"os"
	"time"
)

// Fingerprint is a cheap proxy for "has this file's content possibly
// changed". It reads only filesystem metadata: dumps run to hundreds of
// gigabytes, so hashing content is out of the question at interactive
// latency.
//
// Two distinct writes landing within the same mtime granularity and
// producing the same size are indistinguishable and will be treated as
// unchanged. This false negative is a documented trade-off, not a bug.
type Fingerprint struct {
	Size    int64
	ModTime time.Time
}

// ComputeFingerprint stats the file and returns its current fingerprint.
// It must be computed fresh on every cache probe, never cached itself.
func ComputeFingerprint(path string) (Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Fingerprint{}, errors.Join(ErrDumpStat, err)
	}
	return Fingerprint{
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Matches reports whether two fingerprints are identical.
func (f Fingerprint) Matches(other Fingerprint) bool {
	return f.Size == other.Size && f.ModTime.Equal(other.ModTime)
}
