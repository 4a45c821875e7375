package protocolerrors

import (
	"testing"

	"github.com/pkg/errors"
)

var errTest = errors.New("test error")

func TestProtocolErrorUnwrap(t *testing.T) {
	err := errors.Wrap(Wrapf(true, errTest, "block %d", 5), "outer")
	if !errors.Is(err, errTest) {
		t.Fatalf("expected the cause to be reachable through the protocol error")
	}

	var protocolErr *ProtocolError
	if !errors.As(err, &protocolErr) {
		t.Fatalf("expected a ProtocolError in the chain")
	}
	if protocolErr.Error() != "block 5: test error" {
		t.Fatalf("unexpected error message: %s", protocolErr.Error())
	}
}

func TestShouldBanPeer(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil", err: nil, expected: false},
		{name: "plain error", err: errTest, expected: false},
		{name: "no ban", err: Errorf(false, "busy"), expected: false},
		{name: "ban", err: Errorf(true, "malformed"), expected: true},
		{name: "wrapped ban", err: errors.Wrap(Wrapf(true, errTest, "malformed"), "outer"), expected: true},
	}
	for _, test := range tests {
		if ShouldBanPeer(test.err) != test.expected {
			t.Fatalf("%s: expected ShouldBanPeer to be %t", test.name, test.expected)
		}
	}
}
