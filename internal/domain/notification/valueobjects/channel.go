package valueobjects

import "fmt"

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
	ChannelSMS   Channel = "sms"
	ChannelInApp Channel = "in_app"
)

var validChannels = map[Channel]bool{
	ChannelEmail: true,
	ChannelPush:  true,
	ChannelSMS:   true,
	ChannelInApp: true,
}

func (c Channel) String() string {
	return string(c)
}

func (c Channel) IsValid() bool {
	return validChannels[c]
}

func NewChannel(s string) (Channel, error) {
	c := Channel(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid channel: %s", s)
	}
	return c, nil
}
