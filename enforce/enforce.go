// Package enforce gives every other package a single panic-on-failure
// check, used in place of scattered "if err != nil { return err }"
// plumbing anywhere a failure is unrecoverable for this engine (a
// malformed input file, a device that fails to open, ...).
package enforce

import (
	"fmt"
	"log"
	"math"
)

func init() {
	checkCompiler()
}

// ENFORCE panics with args logged if query is false, a non-nil error, or
// any string message (an empty one included); nil and true pass silently.
func ENFORCE(query interface{}, args ...interface{}) {
	switch t := query.(type) {
	case bool:
		{
			if !t {
				log.Println("ENFORCE:", args)
				panic(0)
			}
		}
	case error:
		{
			if t != nil {
				log.Println("ENFORCE:", args)
				panic(t)
			}
		}
	case string:
		{
			log.Println("ENFORCE:", query.(string), args)
			panic(t)
		}
	case nil:
		// Allow nil to pass since we sometimes do enforce.ENFORCE(err) to ensure there is no error
		break
	default:
		log.Println("ENFORCE: incorrect usage of enforce with type: ", fmt.Sprintf("%T", t), "-", t, "-", args)
		panic(t)
	}
}

// checkCompiler enforces a 64-bit int, which the CSR offsets and buffer
// byte-length arithmetic elsewhere in this module assume.
func checkCompiler() {
	myint := int(math.MaxInt64)
	myint64 := int64(math.MaxInt64)
	ENFORCE(uint64(myint) == uint64(myint64), "Must be on 64 bit system.")
}
