package unpack

import (
	"fmt"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const packerBody = `eval(function(p,a,c,k,e,d){e=function(c){return(c<a?'':e(parseInt(c/a)))+((c=c%a)>35?String.fromCharCode(c+29):c.toString(36))};if(!''.replace(/^/,String)){while(c--){d[e(c)]=k[c]||e(c)}k=[function(e){return d[e]}];e=function(){return'\\w+'};c=1};while(c--){if(k[c]){p=p.replace(new RegExp('\\b'+e(c)+'\\b','g'),k[c])}}return p}`

func pack(payload string, radix, count int, keywords []string) string {
	payload = strings.ReplaceAll(payload, `'`, `\'`)
	return fmt.Sprintf("%s('%s',%d,%d,'%s'.split('|'),0,{}))", packerBody, payload, radix, count, strings.Join(keywords, "|"))
}

var jsQuote = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// nested packs "deep" and wraps it in layers-1 further packed blocks.
func nested(layers int) string {
	s := pack("0", 10, 1, []string{"deep"})
	for i := 1; i < layers; i++ {
		s = fmt.Sprintf("%s('%s',10,0,''.split('|'),0,{}))", packerBody, jsQuote.Replace(s))
	}
	return s
}

func TestUnpack(t *testing.T) {
	Convey("Unpack", t, func() {
		player := pack(`0 1=2.3('4');5.6({7:"8://9.a/b.c"})`, 36, 13, strings.Split(
			"var|x|document|getElementById|player|jwplayer|setup|file|https|cdn|example|master|m3u8", "|"))

		Convey("Should decode a packed block", func() {
			out := Unpack(player)
			So(out, ShouldEqual, `var x=document.getElementById('player');jwplayer.setup({file:"https://cdn.example/master.m3u8"})`)
		})

		Convey("Should leave plain scripts untouched", func() {
			plain := `var player = jwplayer("x"); // no packing here`
			So(IsPacked(plain), ShouldBeFalse)
			So(Unpack(plain), ShouldEqual, plain)
		})

		Convey("Should preserve the surrounding document", func() {
			doc := "<html><script>" + player + "</script></html>"
			out := Unpack(doc)
			So(out, ShouldStartWith, "<html><script>var x=document")
			So(out, ShouldEndWith, "master.m3u8\"})</script></html>")
		})

		Convey("Should decode every block independently", func() {
			first := pack("0 1", 10, 2, []string{"hello", "world"})
			second := pack("0-1", 10, 2, []string{"foo", "bar"})
			So(Unpack(first+";\n"+second), ShouldEqual, "hello world;\nfoo-bar")
		})

		Convey("Should keep a malformed block and still decode the others", func() {
			broken := packerBody + "('0 1',x,2,'a|b'.split('|'),0,{}))"
			good := pack("0", 10, 1, []string{"ok"})
			out := Unpack(broken + ";" + good)
			So(out, ShouldEqual, broken+";ok")
		})

		Convey("Should map digits above 35 to letters", func() {
			keywords := make([]string, 40)
			keywords[36] = "hello"
			So(Unpack(pack("A 10", 62, 40, keywords)), ShouldEqual, "hello 10")
		})

		Convey("Should keep the token when its keyword is empty", func() {
			So(Unpack(pack("0 1", 10, 2, []string{"zero", ""})), ShouldEqual, "zero 1")
		})

		Convey("Should decode nested packing", func() {
			inner := pack("0", 10, 1, []string{"deep"})
			outer := fmt.Sprintf("%s('%s',10,0,''.split('|'),0,{}))", packerBody, strings.ReplaceAll(inner, `'`, `\'`))
			So(Unpack(outer), ShouldEqual, "deep")
		})

		Convey("Should peel up to maxPasses layers in one call", func() {
			out := Unpack(nested(maxPasses))
			So(out, ShouldEqual, "deep")
			So(Unpack(out), ShouldEqual, out)
		})

		Convey("Should leave deeper layers for the next call", func() {
			once := Unpack(nested(maxPasses + 1))
			So(IsPacked(once), ShouldBeTrue)
			So(Unpack(once), ShouldEqual, "deep")
		})

		Convey("Should be idempotent", func() {
			once := Unpack(player)
			So(Unpack(once), ShouldEqual, once)

			broken := packerBody + "('0',10,1,'a'.split(','),0,{}))"
			So(Unpack(Unpack(broken)), ShouldEqual, Unpack(broken))
		})
	})
}

func TestEncode(t *testing.T) {
	Convey("encode", t, func() {
		So(encode(0, 36), ShouldEqual, "0")
		So(encode(35, 36), ShouldEqual, "z")
		So(encode(36, 36), ShouldEqual, "10")
		So(encode(36, 62), ShouldEqual, "A")
		So(encode(61, 62), ShouldEqual, "Z")
		So(encode(62, 62), ShouldEqual, "10")
	})
}
