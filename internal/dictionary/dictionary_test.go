package dictionary

import (
	"testing"
	"time"
)

func TestStaticDict(t *testing.T) {
	s := Static{"JS": "John Smith", "JB": "James Brown"}
	dict := s.Dict()
	if len(dict) != 2 {
		t.Fatalf("Dict() has %d entries, want 2", len(dict))
	}
	if dict["JS"] != "John Smith" {
		t.Errorf("Dict()[JS] = %q, want John Smith", dict["JS"])
	}
}

func TestStaticNil(t *testing.T) {
	var s Static
	if len(s.Dict()) != 0 {
		t.Errorf("nil Static must serve an empty dictionary")
	}
}

func TestRedisProviderFallback(t *testing.T) {
	fallback := map[string]string{"JS": "John Smith"}
	p := NewRedisProvider(nil, "namematch:acronyms", time.Minute, fallback)

	dict := p.Dict()
	if dict["JS"] != "John Smith" {
		t.Errorf("Dict()[JS] = %q, want the fallback entry before the first refresh", dict["JS"])
	}

	// The fallback is copied; mutating the caller's map must not reach the
	// active dictionary.
	fallback["JS"] = "mutated"
	if p.Dict()["JS"] != "John Smith" {
		t.Error("provider aliased the fallback map")
	}
}
