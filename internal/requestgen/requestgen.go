// Package requestgen builds synthetic request heads for tests and
// benchmarks.
package requestgen

import (
	"strconv"
	"strings"

	"github.com/indigo-web/httpcore/headers"
)

// Headers builds a container of n fields, a Host field being the last one.
func Headers(n int) *headers.Headers {
	hdrs := headers.NewPrealloc(n, n*150)

	for i := 0; i < n-1; i++ {
		name := "some-random-header-name-nobody-cares-about" + strconv.Itoa(i)
		if err := hdrs.Append(name, strings.Repeat("b", 100)); err != nil {
			panic(err)
		}
	}

	if err := hdrs.Append("Host", "localhost"); err != nil {
		panic(err)
	}

	return hdrs
}

// Generate renders a complete request head for the given target. The header
// block serialization already carries the terminating empty line.
func Generate(uri string, hdrs *headers.Headers) []byte {
	request := append([]byte(nil), "GET /"+uri+" HTTP/1.1\r\n"...)

	return append(request, hdrs.String()...)
}
