package gallery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupportedImageType(t *testing.T) {
	assert.True(t, IsSupportedImageType("image/png"))
	assert.True(t, IsSupportedImageType("image/svg+xml"))
	assert.False(t, IsSupportedImageType("text/plain; charset=utf-8"))
}

func TestNewObjectKey(t *testing.T) {
	key := NewObjectKey("../photos/sunset.png")

	assert.True(t, strings.HasSuffix(key, "-sunset.png"))
	assert.NotContains(t, key, "/")

	another := NewObjectKey("sunset.png")
	assert.NotEqual(t, key, another)
}

func TestObjectKeyFromURL(t *testing.T) {
	key := ObjectKeyFromURL("https://gallery-images.s3.ap-northeast-1.amazonaws.com/1712000000000-ab12cd34-sunset.png")
	assert.Equal(t, "1712000000000-ab12cd34-sunset.png", key)

	assert.Equal(t, "", ObjectKeyFromURL("://not-a-url"))
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString(""))

	v := OptionalString("alice")
	assert.NotNil(t, v)
	assert.Equal(t, "alice", *v)
}
