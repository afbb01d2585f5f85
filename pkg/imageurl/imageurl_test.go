package imageurl

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullID = "11111111-aaaa-bbbb-cccc-222222222222"

func TestURL_ExamplesFromGallery(t *testing.T) {
	assert.Equal(t, "https://img.unbelong.xyz/ab12.avif", URL("ab12", Options{Format: FormatAVIF}))
	assert.Equal(t,
		"https://imagedelivery.net/wdR9enbrkaPsEgUtgFORrw/11111111-aaaa-bbbb-cccc-222222222222/public?width=400&height=400&fit=cover",
		URL(fullID, Options{Width: 400, Height: 400, Fit: FitCover}),
	)
}

func TestParse_ClassifiesByLength(t *testing.T) {
	tests := []struct {
		id   string
		want Kind
	}{
		{"", KindFull},
		{"a", KindFull},
		{"abc", KindFull},
		{"abcd", KindShort},
		{"abcde", KindShort},
		{"abcdef", KindShort},
		{"abcdefg", KindFull},
		{fullID, KindFull},
		// lengths are UTF-16 code units, so each emoji counts twice
		{"🎨", KindFull},
		{"🎨🎨", KindShort},
		{"🎨🎨🎨", KindShort},
		{"🎨🎨🎨🎨", KindFull},
		{"夕焼け空", KindShort},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.id).Kind())
		})
	}
}

func TestURL_ShortIgnoresTransformOptions(t *testing.T) {
	opts := []Options{
		{},
		{Width: 10},
		{Width: 400, Height: 300, Fit: FitCrop, Quality: 80},
		{Format: FormatWebP},
		{Format: FormatAuto, Quality: 10},
		{Format: FormatJSON},
	}
	for _, id := range []string{"abcd", "ab12c", "zz99zz"} {
		for _, o := range opts {
			assert.Equal(t, DefaultCDNHost+"/"+id+".webp", URL(id, o))
		}
		assert.Equal(t, DefaultCDNHost+"/"+id+".avif", URL(id, Options{Format: FormatAVIF, Width: 99}))
	}
}

func TestURL_FullSerializesOnlySetOptionsInOrder(t *testing.T) {
	base := DefaultDeliveryHost + "/" + DefaultAccountHash + "/" + fullID + "/public"
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"none", Options{}, base},
		{"width", Options{Width: 1200}, base + "?width=1200"},
		{"quality and format", Options{Format: FormatAVIF, Quality: 70}, base + "?quality=70&format=avif"},
		{"all", Options{Format: FormatAuto, Quality: 85, Fit: FitScaleDown, Height: 630, Width: 1200},
			base + "?width=1200&height=630&fit=scale-down&quality=85&format=auto"},
		{"height and fit", Options{Fit: FitPad, Height: 5}, base + "?height=5&fit=pad"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := URL(fullID, tt.opts)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.opts == (Options{}), !strings.Contains(got, "?"))
		})
	}
}

func TestURL_ShortByUTF16Length(t *testing.T) {
	assert.Equal(t, DefaultCDNHost+"/🎨🎨.webp", URL("🎨🎨", Options{Width: 400}))
}

func TestURL_EmptyIDStillYieldsURL(t *testing.T) {
	assert.Equal(t, DefaultDeliveryHost+"/"+DefaultAccountHash+"//public", URL("", Options{}))
}

func TestURL_Deterministic(t *testing.T) {
	opts := Options{Width: 600, Height: 400, Fit: FitCover}
	for _, id := range []string{"", "ab12", fullID} {
		assert.Equal(t, URL(id, opts), URL(id, opts))
	}
}

func TestResolver_CustomHostsTrimTrailingSlash(t *testing.T) {
	r := Resolver{CDNHost: "https://cdn.test/", DeliveryHost: "https://delivery.test/", AccountHash: "acct"}
	assert.Equal(t, "https://cdn.test/abcd.webp", r.Resolve("abcd", Options{}))
	assert.Equal(t, "https://delivery.test/acct/long-identifier/public?width=1", r.Resolve("long-identifier", Options{Width: 1}))
}

func TestRef_JSONRoundTripClassifies(t *testing.T) {
	var payload struct {
		Image Ref  `json:"image_id"`
		OG    *Ref `json:"og_image_id"`
		Null  Ref  `json:"null_id"`
	}
	err := json.Unmarshal([]byte(`{"image_id":"ab12","og_image_id":null,"null_id":null}`), &payload)
	require.NoError(t, err)
	assert.Equal(t, KindShort, payload.Image.Kind())
	assert.Equal(t, "ab12", payload.Image.ID())
	assert.Nil(t, payload.OG)
	assert.True(t, payload.Null.IsZero())

	b, err := json.Marshal(payload.Image)
	require.NoError(t, err)
	assert.JSONEq(t, `"ab12"`, string(b))

	var bad Ref
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestFitAndFormatValid(t *testing.T) {
	assert.True(t, FitCover.Valid())
	assert.False(t, Fit("stretch").Valid())
	assert.True(t, FormatAVIF.Valid())
	assert.False(t, Format("png").Valid())
}
