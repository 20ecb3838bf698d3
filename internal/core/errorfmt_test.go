package core

import (
	"encoding/json"
	"os"
	"testing"
)

func TestCLIErrorJSON(t *testing.T) {
	err := Wrap(ErrIO, "bad", os.ErrInvalid)
	ce, ok := err.(CLIError)
	if !ok {
		t.Fatalf("wrap did not return CLIError")
	}
	raw := ce.JSON()
	var decoded map[string]string
	if json.Unmarshal([]byte(raw), &decoded) != nil {
		t.Fatalf("json unmarshal failed")
	}
	if decoded["code"] != ErrIO {
		t.Fatalf("wrong code json: %v", decoded)
	}
}

func TestCLIErrorWithoutDetail(t *testing.T) {
	ce := CLIError{Code: ErrPanic, Message: "panic recovered"}
	if ce.Error() != "panic recovered" {
		t.Fatalf("unexpected message: %q", ce.Error())
	}
}
