package uftp

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
)

// rootNames maps each message kind to the name of its XML root element.
// Most kinds use their own name; the portfolio messages capitalise the
// role acronym and the prognosis messages carry a dash.
var rootNames = map[Kind]string{
	KindAgrPortfolioQuery:             "AGRPortfolioQuery",
	KindAgrPortfolioQueryResponse:     "AGRPortfolioQueryResponse",
	KindAgrPortfolioUpdate:            "AGRPortfolioUpdate",
	KindAgrPortfolioUpdateResponse:    "AGRPortfolioUpdateResponse",
	KindDsoPortfolioQuery:             "DSOPortfolioQuery",
	KindDsoPortfolioQueryResponse:     "DSOPortfolioQueryResponse",
	KindDsoPortfolioUpdate:            "DSOPortfolioUpdate",
	KindDsoPortfolioUpdateResponse:    "DSOPortfolioUpdateResponse",
	KindDPrognosis:                    "D-Prognosis",
	KindDPrognosisResponse:            "D-PrognosisResponse",
	KindFlexRequest:                   "FlexRequest",
	KindFlexRequestResponse:           "FlexRequestResponse",
	KindFlexOffer:                     "FlexOffer",
	KindFlexOfferResponse:             "FlexOfferResponse",
	KindFlexOfferRevocation:           "FlexOfferRevocation",
	KindFlexOfferRevocationResponse:   "FlexOfferRevocationResponse",
	KindFlexOrder:                     "FlexOrder",
	KindFlexOrderResponse:             "FlexOrderResponse",
	KindFlexReservationUpdate:         "FlexReservationUpdate",
	KindFlexReservationUpdateResponse: "FlexReservationUpdateResponse",
	KindFlexSettlement:                "FlexSettlement",
	KindFlexSettlementResponse:        "FlexSettlementResponse",
	KindMetering:                      "Metering",
	KindMeteringResponse:              "MeteringResponse",
	KindTestMessage:                   "TestMessage",
	KindTestMessageResponse:           "TestMessageResponse",
}

var kindsByRootName = func() map[string]Kind {
	m := make(map[string]Kind, len(rootNames))
	for kind, name := range rootNames {
		m[name] = kind
	}
	return m
}()

// RootName returns the XML root element name for a message kind.
func RootName(kind Kind) string { return rootNames[kind] }

// KindOfRoot returns the message kind for an XML root element name.
func KindOfRoot(name string) (Kind, bool) {
	kind, ok := kindsByRootName[name]
	return kind, ok
}

// ToXML serialises a payload message to an XML document. The message is
// validated, and defaults normalised, before marshalling.
func ToXML(msg PayloadMessage) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	body, err := xml.MarshalIndent(msg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("uftp: marshal %s: %w", msg.Kind(), err)
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// FromXML parses an XML document into the payload message named by its
// root element. The parsed message is validated before it is returned.
func FromXML(data []byte) (PayloadMessage, error) {
	root, err := rootElement(data)
	if err != nil {
		return nil, err
	}
	kind, ok := KindOfRoot(root)
	if !ok {
		return nil, fmt.Errorf("%w: unknown message type %q", ErrValidation, root)
	}
	msg, _ := NewMessage(kind)
	if err := xml.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrValidation, root, err)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

func rootElement(data []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return "", fmt.Errorf("%w: document has no root element", ErrValidation)
		}
		if err != nil {
			return "", fmt.Errorf("%w: malformed XML: %v", ErrValidation, err)
		}
		if start, ok := token.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

// ToJSON serialises a payload message to JSON with snake_case keys.
func ToJSON(msg PayloadMessage) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(msg)
}

// FromJSON parses JSON produced by ToJSON into the provided message and
// validates it.
func FromJSON(data []byte, msg PayloadMessage) error {
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("%w: parse JSON %s: %v", ErrValidation, msg.Kind(), err)
	}
	return msg.Validate()
}
