package translate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	p := Printer()
	assert.NotNil(p)
	assert.Same(p, Printer())

	assert.Equal("halted", From("halted"))
	assert.Equal("rom 0x01f halted", From("rom 0x%03x %v", 31, "halted"))
	assert.Equal(p.Sprintf("%d bytes", 1024), From("%d bytes", 1024))
}

func TestFrom_Concurrent(t *testing.T) {
	assert := assert.New(t)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for n := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[n] = From("fault at 0x%03x", 0x20)
		}()
	}
	wg.Wait()

	for _, text := range results {
		assert.Equal("fault at 0x020", text)
	}
}
