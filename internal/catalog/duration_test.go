package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "korean minutes", text: "25분", want: 25},
		{name: "korean hour and minutes", text: "1시간 5분", want: 65},
		{name: "korean hour only", text: "2시간", want: 120},
		{name: "english minutes", text: "35 minutes", want: 35},
		{name: "english hour and minutes", text: "1 hour 5 minutes", want: 65},
		{name: "english abbreviations", text: "1 hr 30 min", want: 90},
		{name: "singular minute", text: "1 minute", want: 1},
		{name: "unparseable text", text: "배달 불가", want: SentinelMinutes},
		{name: "empty", text: "", want: SentinelMinutes},
		{name: "trailing garbage", text: "25 bananas", want: SentinelMinutes},
		{name: "negative number", text: "-5분", want: SentinelMinutes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.text))
		})
	}
}

func TestVenueMinutes(t *testing.T) {
	v := Venue{DeliveryDuration: "40분", DineInDuration: "30분"}
	assert.Equal(t, 40, VenueMinutes(v, true))
	assert.Equal(t, 30, VenueMinutes(v, false))

	unknown := Venue{DeliveryDuration: "배달 불가", DineInDuration: "1시간 30분"}
	assert.Equal(t, SentinelMinutes, VenueMinutes(unknown, true))
	assert.Equal(t, 90, VenueMinutes(unknown, false))
}
