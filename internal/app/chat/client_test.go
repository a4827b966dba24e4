package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientDeliverAndClose(t *testing.T) {
	c := &Client{id: "c1", send: make(chan []byte, 2)}

	assert.True(t, c.Deliver([]byte("a")))
	assert.True(t, c.Deliver([]byte("b")))
	assert.False(t, c.Deliver([]byte("c")), "full queue drops")

	c.Close()
	c.Close()
	assert.False(t, c.Deliver([]byte("d")), "closed queue drops")

	var drained []string
	for frame := range c.send {
		drained = append(drained, string(frame))
	}
	assert.Equal(t, []string{"a", "b"}, drained)
}
