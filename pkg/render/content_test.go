package render

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/matryer/is"

	"go.searchlight.dev/corgi/pkg/request"
)

func TestClassify(t *testing.T) {
	is := is.New(t)

	is.Equal(Classify("", false), Absent)
	is.Equal(Classify("application/json", true), JSON)
	is.Equal(Classify("application/json; charset=utf-8", true), Other)
	is.Equal(Classify("text/plain", true), Other)
	is.Equal(Classify("", true), Other)
	is.Equal(Classify("text/\xffplain", true), Malformed)
}

func TestClassifyRequest_FirstContentTypeWins(t *testing.T) {
	is := is.New(t)

	req := &request.InspectedRequest{Headers: []request.Header{
		{Name: "content-type", Value: "application/json"},
		{Name: "Content-Type", Value: "text/plain"},
	}}
	is.Equal(ClassifyRequest(req), JSON)
	is.Equal(ClassifyRequest(&request.InspectedRequest{}), Absent)
}

func TestRender_Raw(t *testing.T) {
	is := is.New(t)

	out, err := ContentRenderer{}.Render(Other, []byte("hello"))
	is.NoErr(err)
	is.Equal(out, "raw: hello")

	out, err = ContentRenderer{}.Render(Other, nil)
	is.NoErr(err)
	is.Equal(out, "raw: ")
}

func TestRender_RawLossy(t *testing.T) {
	is := is.New(t)

	body := []byte("ab\xffcd")
	out := ContentRenderer{}.Format(Other, body)
	is.Equal(out, "raw: ab\uFFFDcd")
	is.Equal(string(body), "ab\xffcd")
}

func TestRender_AbsentIgnoresBody(t *testing.T) {
	is := is.New(t)

	for _, body := range [][]byte{nil, []byte("x"), []byte(`{"a":1}`), []byte("\xff")} {
		is.Equal(ContentRenderer{Pretty: true}.Format(Absent, body), NoContentType)
		is.Equal(ContentRenderer{}.Format(Absent, body), NoContentType)
	}
}

func TestRender_Malformed(t *testing.T) {
	is := is.New(t)

	out, err := ContentRenderer{}.Render(Malformed, []byte("anything"))
	is.NoErr(err)
	is.Equal(out, SomeErrorOccurred)
}

func TestRender_PrettyJSON(t *testing.T) {
	is := is.New(t)

	out, err := ContentRenderer{Pretty: true}.Render(JSON, []byte(`{"a":1}`))
	is.NoErr(err)
	is.True(strings.Count(out, "\n") >= 2)
	is.True(strings.Contains(out, `"a": 1`))
}

func TestRender_CompactJSON(t *testing.T) {
	is := is.New(t)

	out, err := ContentRenderer{}.Render(JSON, []byte("{ \"b\" : [1, 2.50],\n \"a\" : null }"))
	is.NoErr(err)
	is.Equal(out, `{"a":null,"b":[1,2.50]}`)
}

func TestRender_JSONIsDeterministic(t *testing.T) {
	is := is.New(t)

	r := ContentRenderer{Pretty: true}
	first := r.Format(JSON, []byte(`{"z":1,"m":{"y":true,"b":false},"a":"s"}`))
	for i := 0; i < 10; i++ {
		is.Equal(r.Format(JSON, []byte(`{"z":1,"m":{"y":true,"b":false},"a":"s"}`)), first)
	}
	is.True(strings.Index(first, `"a"`) < strings.Index(first, `"m"`))
}

func TestRender_JSONRoundTrip(t *testing.T) {
	docs := []string{
		`{"a":1}`,
		`{"id":10010,"name":"Kris","age":30,"nickname":"asdasd"}`,
		`[1,"two",3.5,true,null,{"nested":{"deep":[[],{}]}}]`,
		`"just a string"`,
		`12345678901234567890`,
		`{"unicode":"héllo 🐶","esc":"a\"b\\c\n"}`,
	}
	for _, pretty := range []bool{true, false} {
		r := ContentRenderer{Pretty: pretty}
		for _, doc := range docs {
			out, err := r.Render(JSON, []byte(doc))
			if err != nil {
				t.Fatalf("pretty=%v %s: %v", pretty, doc, err)
			}
			var want, got interface{}
			if err := json.Unmarshal([]byte(doc), &want); err != nil {
				t.Fatal(err)
			}
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("pretty=%v: rendered output %q does not parse: %v", pretty, out, err)
			}
			if !reflect.DeepEqual(want, got) {
				t.Fatalf("pretty=%v: got %#v, want %#v", pretty, got, want)
			}
		}
	}
}

func TestRender_InvalidJSON(t *testing.T) {
	for _, body := range []string{"", "   ", "{", `{"a":}`, `{"a":1} trailing`, "not json", "\xff", "{\"a\":\"\xff\"}", `{"a":1e999}`, `[1, -1e400]`} {
		t.Run(body, func(t *testing.T) {
			is := is.New(t)

			_, err := ContentRenderer{Pretty: true}.Render(JSON, []byte(body))
			is.True(err != nil)
			is.Equal(ContentRenderer{Pretty: true}.Format(JSON, []byte(body)), SomeErrorOccurred)
		})
	}
}

func TestRecord(t *testing.T) {
	is := is.New(t)

	req := &request.InspectedRequest{
		Method:  "GET",
		Target:  "/ping",
		Version: request.HTTP11,
		Headers: []request.Header{{Name: "Content-Type", Value: "text/plain"}},
		Body:    []byte("hello"),
	}
	body := ContentRenderer{}.Format(ClassifyRequest(req), req.Body)
	is.Equal(Record(req, body), "GET /ping HTTP/1.1\nContent-Type: text/plain\nraw: hello")
}
