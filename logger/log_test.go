package logger

import (
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	assert := assert.New(t)
	defer SetFilter("")
	defer SetLimiter(0)

	out := filterOutput("fft product of degrees %d", time.Now().UnixNano())
	assert.Contains(out, "fft")

	err := SetFilter("gcd")
	assert.Nil(err)
	out = filterOutput("fft product of degrees %d", time.Now().UnixNano())
	assert.NotContains(out, "fft")
	out = filterOutput("GCD over fft %d", time.Now().UnixNano())
	assert.NotContains(out, "fft")
	out = filterOutput("gcd over fft %d", time.Now().UnixNano())
	assert.Contains(out, "fft")

	err = SetFilter("(?i)gcd")
	assert.Nil(err)
	out = filterOutput("GCD over fft %d", time.Now().UnixNano())
	assert.Contains(out, "fft")
	out = filterOutput("divmod over fft %d", time.Now().UnixNano())
	assert.NotContains(out, "fft")

	err = SetFilter("(?i)gcd|Fft")
	assert.Nil(err)
	out = filterOutput("divmod over Fft %d", time.Now().UnixNano())
	assert.Contains(out, "Fft")

	err = SetFilter("(")
	assert.NotNil(err)

	la := limiterAvailable("fallback to direct")
	assert.True(la)
	SetLimiter(10)
	for i := 0; i < 10; i++ {
		la := limiterAvailable("fallback to direct once more")
		assert.True(la)
	}
	la = limiterAvailable("fallback to direct once more")
	assert.False(la)
	la = limiterAvailable("fallback to direct again")
	assert.True(la)
}

func TestLevels(t *testing.T) {
	assert := assert.New(t)
	defer SetLevel(ERROR)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	SetLevel(INFO)
	Debugf("hidden %d", 1)
	Printf("shown %d", 2)
	assert.NotContains(buf.String(), "hidden")
	assert.Contains(buf.String(), "shown 2")

	SetLevel(DEBUG)
	Debugf("debug %d", 3)
	assert.Contains(buf.String(), "debug 3")

	for name, want := range map[string]int{"": ERROR, "info": INFO, "Verbose": VERBOSE, "debug": DEBUG, "5": 5} {
		l, err := ParseLevel(name)
		assert.Nil(err)
		assert.Equal(want, l)
	}
	_, err := ParseLevel("loud")
	assert.NotNil(err)
}
