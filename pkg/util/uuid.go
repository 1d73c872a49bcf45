package util

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/google/uuid"
)

// HashUUID fingerprints the JSON form of value as a UUID string.
func HashUUID(value any) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return hashBytes(raw)
}

// PixelsUUID fingerprints a [height][width][channels] array. Arrays with
// the same shape and values share a fingerprint.
func PixelsUUID(pixels [][][]float32) string {
	hasher := md5.New()
	var buf [4]byte
	for _, row := range pixels {
		binary.BigEndian.PutUint32(buf[:], uint32(len(row)))
		hasher.Write(buf[:])
		for _, px := range row {
			binary.BigEndian.PutUint32(buf[:], uint32(len(px)))
			hasher.Write(buf[:])
			for _, v := range px {
				binary.BigEndian.PutUint32(buf[:], math.Float32bits(v))
				hasher.Write(buf[:])
			}
		}
	}
	id, err := uuid.FromBytes(hasher.Sum(nil))
	if err != nil {
		return ""
	}
	return id.String()
}

func hashBytes(raw []byte) string {
	hash := md5.Sum(raw)
	id, err := uuid.FromBytes(hash[:])
	if err != nil {
		return ""
	}
	return id.String()
}

// NewRunID returns a random identifier for tagging a script run.
func NewRunID() string {
	return uuid.NewString()
}
