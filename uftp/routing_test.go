package uftp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryRoutedKindHasAConstructor(t *testing.T) {
	for kind := range RoutingMap {
		msg, ok := NewMessage(kind)
		require.True(t, ok, "no constructor for %s", kind)
		assert.Equal(t, kind, msg.Kind())
	}
}

func TestEveryRoutedKindIsAcceptableToItsRecipient(t *testing.T) {
	for kind, route := range RoutingMap {
		assert.True(t, Acceptable(route.Recipient, kind),
			"%s routes to %s but %s does not accept it", kind, route.Recipient, route.Recipient)
	}
}

func TestEveryAcceptableKindIsRoutedToThatRole(t *testing.T) {
	for role, kinds := range AcceptableMessages {
		for _, kind := range kinds {
			route, ok := RoutingMap[kind]
			require.True(t, ok, "%s accepted by %s but not routed", kind, role)
			assert.Equal(t, role, route.Recipient, "%s accepted by %s but routed to %s", kind, role, route.Recipient)
		}
	}
}

func TestTestMessagesAcceptableToEveryRole(t *testing.T) {
	for _, role := range []Role{RoleAGR, RoleCRO, RoleDSO} {
		assert.True(t, Acceptable(role, KindTestMessage))
		assert.True(t, Acceptable(role, KindTestMessageResponse))
	}
	assert.False(t, Acceptable("BRP", KindTestMessage))
}

func TestRequestResponsePairsAreConsistent(t *testing.T) {
	for request, response := range RequestResponseMap {
		if request == KindTestMessage {
			// Test messages are not part of the routing tables.
			continue
		}
		requestRoute := RoutingMap[request]
		responseRoute := RoutingMap[response]
		assert.Equal(t, requestRoute.Sender, responseRoute.Recipient,
			"%s answers %s but travels the same direction", response, request)
		assert.Equal(t, requestRoute.Recipient, responseRoute.Sender,
			"%s answers %s but travels the same direction", response, request)
	}
}

func TestEveryRequestKindHasAResponseKind(t *testing.T) {
	for kind, route := range RoutingMap {
		if _, isResponse := responseKinds()[kind]; isResponse {
			continue
		}
		response, ok := RequestResponseMap[kind]
		require.True(t, ok, "request kind %s has no response kind", kind)
		assert.Equal(t, route.Sender, RoutingMap[response].Recipient)
	}
}

func responseKinds() map[Kind]struct{} {
	set := make(map[Kind]struct{}, len(RequestResponseMap))
	for _, response := range RequestResponseMap {
		set[response] = struct{}{}
	}
	return set
}

func TestNewResponseFor(t *testing.T) {
	response, ok := NewResponseFor(KindFlexRequest)
	require.True(t, ok)
	require.Equal(t, KindFlexRequestResponse, response.Kind())

	response.SetReferenceID(testReferenceID)
	typed, ok := response.(*FlexRequestResponse)
	require.True(t, ok)
	assert.Equal(t, testReferenceID, typed.FlexRequestMessageID)
}

func TestNewResponseForResponseKind(t *testing.T) {
	_, ok := NewResponseFor(KindFlexRequestResponse)
	assert.False(t, ok, "response kinds are not answered")
}

func TestDsoPortfolioUpdateResponseReferenceAttribute(t *testing.T) {
	response, ok := NewResponseFor(KindDsoPortfolioUpdate)
	require.True(t, ok)
	response.SetReferenceID(testReferenceID)
	response.Meta().SenderDomain = "cro.example.org"
	response.Meta().RecipientDomain = "dso.example.org"
	response.Meta().TimeStamp = "2024-03-01T10:15:30+01:00"
	response.Meta().MessageID = testMessageID
	response.Meta().ConversationID = testConversationID
	response.Response().Result = Accepted

	doc, err := ToXML(response)
	require.NoError(t, err)
	// The published schema names this attribute with "Response" in it.
	assert.Contains(t, string(doc), `DSOPortfolioUpdateResponseMessageID="`+testReferenceID+`"`)
}

func TestRejectionCarriesNoContent(t *testing.T) {
	response, ok := NewResponseFor(KindAgrPortfolioQuery)
	require.True(t, ok)
	response.SetReferenceID(testReferenceID)
	response.Meta().SenderDomain = "cro.example.org"
	response.Meta().RecipientDomain = "aggregator.example.org"
	response.Meta().TimeStamp = "2024-03-01T10:15:30+01:00"
	response.Meta().MessageID = testMessageID
	response.Meta().ConversationID = testConversationID
	response.Response().Result = Rejected
	response.Response().RejectionReason = ErrInvalidSender.RejectionReason

	doc, err := ToXML(response)
	require.NoError(t, err)
	assert.Contains(t, string(doc), `Result="Rejected"`)
	assert.Contains(t, string(doc), `RejectionReason="Invalid Sender"`)
}
