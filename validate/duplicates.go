package validate

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/hyperledger/cactus-core-api-go/openapi"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	// token of the value currently being read: the last key or array index
	token string
	index int
}

// detectDuplicateKeys reports object keys that occur more than once in the
// same object. JSON decoders keep the last occurrence, which would hide the
// earlier value from validation.
func detectDuplicateKeys(data []byte) openapi.Issues {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var iss openapi.Issues
	var stack []dupFrame

	pointer := func() string {
		toks := make([]string, 0, len(stack))
		for _, f := range stack {
			toks = append(toks, f.token)
		}
		return openapi.JoinPointer("", toks...)
	}
	// valueDone marks the end of a value inside the enclosing container.
	valueDone := func() {
		if len(stack) == 0 {
			return
		}
		top := &stack[len(stack)-1]
		if top.kind == kindObject {
			top.expectingKey = true
			return
		}
		top.index++
		top.token = strconv.Itoa(top.index)
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// malformed input is reported by the decoder used for validation
			break
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, dupFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true})
			case '[':
				stack = append(stack, dupFrame{kind: kindArray, token: "0"})
			case '}', ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
				valueDone()
			}
		case string:
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == kindObject && top.expectingKey {
					top.token = v
					top.expectingKey = false
					if _, ok := top.keys[v]; ok {
						iss = openapi.AppendIssues(iss, openapi.Issue{
							Path:    pointer(),
							Code:    openapi.CodeDuplicateKey,
							Message: "key '" + v + "' duplicated",
						})
					}
					top.keys[v] = struct{}{}
					continue
				}
			}
			valueDone()
		default:
			valueDone()
		}
	}
	return iss
}
