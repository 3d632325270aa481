package uftp

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
)

// Base64Bytes marshals as a Base-64 encoded XML attribute.
type Base64Bytes []byte

// MarshalXMLAttr implements xml.MarshalerAttr.
func (b Base64Bytes) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	return xml.Attr{Name: name, Value: base64.StdEncoding.EncodeToString(b)}, nil
}

// UnmarshalXMLAttr implements xml.UnmarshalerAttr.
func (b *Base64Bytes) UnmarshalXMLAttr(attr xml.Attr) error {
	decoded, err := base64.StdEncoding.DecodeString(attr.Value)
	if err != nil {
		return fmt.Errorf("%w: Body is not valid base64: %v", ErrValidation, err)
	}
	*b = decoded
	return nil
}

// SignedMessage is the outer envelope that travels over HTTP between
// participants. It carries just enough metadata for the recipient to
// look up the sender's public key, plus the sealed inner XML message.
type SignedMessage struct {
	XMLName      xml.Name    `xml:"SignedMessage" json:"-"`
	SenderDomain string      `xml:"SenderDomain,attr" json:"sender_domain"`
	SenderRole   Role        `xml:"SenderRole,attr" json:"sender_role"`
	Body         Base64Bytes `xml:"Body,attr" json:"body"`
}

// Validate checks the envelope attributes.
func (m *SignedMessage) Validate() error {
	if err := match("SenderDomain", m.SenderDomain, reDomain); err != nil {
		return err
	}
	if !m.SenderRole.Valid() {
		return fmt.Errorf("%w: SenderRole must be AGR, CRO or DSO, got %q", ErrValidation, m.SenderRole)
	}
	if len(m.Body) == 0 {
		return requiredError("Body")
	}
	return nil
}

// MarshalSignedMessage serialises the envelope to an XML document.
func MarshalSignedMessage(msg *SignedMessage) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	body, err := xml.MarshalIndent(msg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("uftp: marshal SignedMessage: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// UnmarshalSignedMessage parses an envelope document and validates it.
func UnmarshalSignedMessage(data []byte) (*SignedMessage, error) {
	root, err := rootElement(data)
	if err != nil {
		return nil, err
	}
	if root != "SignedMessage" {
		return nil, fmt.Errorf("%w: expected SignedMessage root, got %q", ErrValidation, root)
	}
	var msg SignedMessage
	if err := xml.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: parse SignedMessage: %v", ErrValidation, err)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
