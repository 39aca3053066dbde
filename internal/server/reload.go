package server

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// reloadScript reconnects with backoff so a server restart during a
// watch session picks the page back up.
const reloadScript = `
(function () {
  var delay = 250;
  function connect() {
    var ws = new WebSocket("ws://" + location.host + "/ws");
    ws.onmessage = function (msg) {
      if (msg.data === "reload") {
        location.reload();
      }
    };
    ws.onclose = function () {
      setTimeout(connect, delay);
      delay = Math.min(delay * 2, 5000);
    };
    ws.onopen = function () {
      delay = 250;
    };
  }
  connect();
})();
`

// injectReloadScript parses the preview page and appends the live
// reload script to its body element.
func injectReloadScript(page string) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parsing preview page: %w", err)
	}

	body := findElement(doc, atom.Body)
	if body == nil {
		return "", fmt.Errorf("preview page has no body element")
	}

	script := &html.Node{
		Type:     html.ElementNode,
		Data:     "script",
		DataAtom: atom.Script,
	}
	script.AppendChild(&html.Node{
		Type: html.TextNode,
		Data: reloadScript,
	})
	body.AppendChild(script)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("rendering preview page: %w", err)
	}
	return buf.String(), nil
}

// findElement returns the first element with the given atom, depth-first.
func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, a); found != nil {
			return found
		}
	}
	return nil
}
