package adapter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gotransfer/internal/adapter"
)

func TestClassifyLabel(t *testing.T) {
	assert.Equal(t, adapter.CategoryWidgets, adapter.ClassifyLabel("Deluxe Widget 3000"))
	assert.Equal(t, adapter.CategoryWidgets, adapter.ClassifyLabel("SUPER-WIDGET"))
	assert.Equal(t, adapter.CategoryGadgets, adapter.ClassifyLabel("Pocket gadget"))
	assert.Equal(t, adapter.CategoryAccessories, adapter.ClassifyLabel("Cabo USB"))
	assert.Equal(t, adapter.CategoryAccessories, adapter.ClassifyLabel(""))
}
