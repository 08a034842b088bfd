package services

import (
	"testing"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestDecodeListShapes(t *testing.T) {
	cases := map[string]string{
		"raw array":       `[{"id":1,"name":"a"},{"id":2,"name":"b"}]`,
		"data array":      `{"success":true,"data":[{"id":1,"name":"a"},{"id":2,"name":"b"}]}`,
		"data keyed":      `{"data":{"milestones":[{"id":1,"name":"a"},{"id":2,"name":"b"}],"pagination":{}}}`,
		"top-level keyed": `{"milestones":[{"id":1,"name":"a"},{"id":2,"name":"b"}]}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := DecodeList[item]([]byte(body), "milestones")
			if err != nil {
				t.Fatalf("DecodeList: %v", err)
			}
			if len(got) != 2 || got[1].Name != "b" {
				t.Fatalf("got %+v", got)
			}
		})
	}
}

func TestDecodeListEmpty(t *testing.T) {
	for _, body := range []string{``, `null`, `{"data":{}}`, `{"message":"ok"}`} {
		got, err := DecodeList[item]([]byte(body), "users")
		if err != nil {
			t.Fatalf("DecodeList(%q): %v", body, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("DecodeList(%q) = %#v, want empty slice", body, got)
		}
	}
}

func TestDecodeListInvalid(t *testing.T) {
	if _, err := DecodeList[item]([]byte(`{"data":[{"id":"x"}]}`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestDecodeObject(t *testing.T) {
	var wrapped, raw item
	if err := DecodeObject([]byte(`{"data":{"id":5,"name":"x"}}`), &wrapped); err != nil {
		t.Fatalf("DecodeObject wrapped: %v", err)
	}
	if err := DecodeObject([]byte(`{"id":6,"name":"y"}`), &raw); err != nil {
		t.Fatalf("DecodeObject raw: %v", err)
	}
	if wrapped.ID != 5 || raw.ID != 6 {
		t.Fatalf("got %+v and %+v", wrapped, raw)
	}
}

func TestDecodePageInfo(t *testing.T) {
	info, ok := DecodePageInfo([]byte(`{"data":{"pagination":{"page":2,"total":40,"totalPages":4}}}`))
	if !ok || info.Page != 2 || info.TotalPages != 4 {
		t.Fatalf("nested: %+v %v", info, ok)
	}

	info, ok = DecodePageInfo([]byte(`{"data":{"page":1,"total":3,"totalPages":1}}`))
	if !ok || info.Total != 3 {
		t.Fatalf("flat: %+v %v", info, ok)
	}

	if _, ok := DecodePageInfo([]byte(`{"data":[]}`)); ok {
		t.Fatal("array data should carry no page info")
	}
}
