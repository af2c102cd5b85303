package yo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
)

const staticMapBaseURL = "https://maps.googleapis.com/maps/api/staticmap?"

// Payload is the JSON body posted to the webhook.
type Payload struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

type staticMapParams struct {
	Center  string `schema:"center"`
	Format  string `schema:"format"`
	MapType string `schema:"maptype"`
	Markers string `schema:"markers"`
	Sensor  string `schema:"sensor"`
	Size    string `schema:"size"`
	Zoom    string `schema:"zoom"`
}

var encoder = schema.NewEncoder()

// BuildPayload renders the webhook body for a parsed request. ok is false when
// the request carries no username.
func BuildPayload(request ParsedRequest) ([]byte, bool) {
	if request.Username == nil {
		return nil, false
	}
	username := *request.Username

	var text string
	switch a := request.Accessory.(type) {
	case Link:
		text = fmt.Sprintf("Yo Link from %s : %s", username, a.URL)
	case Location:
		text = fmt.Sprintf("Yo Location from %s : %s, %s\n%s", username, formatCoordinate(a.Latitude), formatCoordinate(a.Longitude), StaticMapURL(a))
	default:
		text = fmt.Sprintf("Yo from %s", username)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Payload{Username: username, Text: text}); err != nil {
		return nil, false
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), true
}

// StaticMapURL returns a Google static map image URL centred on and marking loc.
// Parameters are appended as "&key=value" in key order, unescaped.
func StaticMapURL(loc Location) string {
	coordinate := formatCoordinate(loc.Latitude) + "," + formatCoordinate(loc.Longitude)

	params := mustEncode(&staticMapParams{
		Center:  coordinate,
		Format:  "png",
		MapType: "roadmap",
		Markers: coordinate,
		Sensor:  "false",
		Size:    "640x640",
		Zoom:    "14",
	})

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(staticMapBaseURL)
	for _, k := range keys {
		for _, v := range params[k] {
			b.WriteString("&" + k + "=" + v)
		}
	}
	return b.String()
}

// mustEncode panics if src cannot be encoded; it is only called with
// staticMapParams, whose fields are all strings.
func mustEncode(src any) map[string][]string {
	params := map[string][]string{}
	if err := encoder.Encode(src, params); err != nil {
		panic(err)
	}
	return params
}

func formatCoordinate(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
