package uftp

import "encoding/xml"

// TestMessage is an empty payload used to verify connectivity and key
// configuration between two participants.
type TestMessage struct {
	XMLName xml.Name `xml:"TestMessage" json:"-"`
	PayloadMessageMeta
}

func (m *TestMessage) Kind() Kind { return KindTestMessage }

func (m *TestMessage) Validate() error { return m.PayloadMessageMeta.validate() }

// TestMessageResponse acknowledges a TestMessage.
type TestMessageResponse struct {
	XMLName xml.Name `xml:"TestMessageResponse" json:"-"`
	PayloadMessageMeta
	PayloadMessageResponseMeta
}

func (m *TestMessageResponse) Kind() Kind { return KindTestMessageResponse }

func (m *TestMessageResponse) Validate() error {
	if err := m.PayloadMessageMeta.validate(); err != nil {
		return err
	}
	return m.PayloadMessageResponseMeta.validate()
}

// SetReferenceID implements ResponseMessage. A TestMessageResponse has
// no typed reference attribute.
func (m *TestMessageResponse) SetReferenceID(string) {}
