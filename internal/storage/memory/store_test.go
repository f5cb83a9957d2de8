package memory

import (
	"testing"

	"github.com/geocoder89/opay/internal/storage/storagetest"
)

func TestStore(t *testing.T) {
	storagetest.Run(t, New())
}
