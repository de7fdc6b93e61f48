package logger

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/cornelk/hashmap"
	"github.com/pkg/errors"
)

const (
	ERROR   = 1
	INFO    = 2
	VERBOSE = 3
	DEBUG   = 7
)

var (
	level   int32
	limiter int32
	filter  atomic.Value
	counter *hashmap.HashMap
)

func init() {
	counter = &hashmap.HashMap{}
	level = ERROR
}

func SetLevel(l int) {
	atomic.StoreInt32(&level, int32(l))
}

func Level() int {
	return int(atomic.LoadInt32(&level))
}

// ParseLevel maps a level name or number to a level.
func ParseLevel(name string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "error":
		return ERROR, nil
	case "info":
		return INFO, nil
	case "verbose":
		return VERBOSE, nil
	case "debug":
		return DEBUG, nil
	}
	var l int
	if _, err := fmt.Sscanf(name, "%d", &l); err != nil || l < 0 {
		return 0, errors.Errorf("unknown log level %q", name)
	}
	return l, nil
}

// SetLimiter caps how many times an identical message is printed. Zero
// disables the cap.
func SetLimiter(l int) {
	atomic.StoreInt32(&limiter, int32(l))
}

func SetFilter(pattern string) error {
	if pattern == "" {
		filter.Store((*regexp.Regexp)(nil))
		return nil
	}
	// https://github.com/google/re2/wiki/Syntax
	reg, err := regexp.Compile(pattern)
	if err != nil {
		return errors.Wrap(err, "log filter")
	}
	filter.Store(reg)
	return nil
}

func Println(v ...interface{}) {
	if Level() >= INFO {
		log.Println(v...)
	}
}

func Printf(format string, v ...interface{}) {
	if Level() >= INFO {
		log.Printf(format, v...)
	}
}

func Errorf(format string, v ...interface{}) {
	printfAtLevel(ERROR, format, v...)
}

func Verbosef(format string, v ...interface{}) {
	printfAtLevel(VERBOSE, format, v...)
}

func Debugf(format string, v ...interface{}) {
	printfAtLevel(DEBUG, format, v...)
}

func printfAtLevel(l int, format string, v ...interface{}) {
	if Level() < l {
		return
	}
	out := filterOutput(format, v...)
	if out == "" {
		return
	}
	if !limiterAvailable(out) {
		return
	}
	log.Print(out)
}

func limiterAvailable(out string) bool {
	limit := atomic.LoadInt32(&limiter)
	if limit == 0 {
		return true
	}
	var i int64
	val, _ := counter.GetOrInsert(out, &i)
	actual := (val).(*int64)
	count := atomic.AddInt64(actual, 1) - 1
	return count < int64(limit)
}

func filterOutput(format string, v ...interface{}) string {
	out := fmt.Sprintf(format, v...)
	reg, _ := filter.Load().(*regexp.Regexp)
	if reg == nil || reg.MatchString(out) {
		return out
	}
	return ""
}
