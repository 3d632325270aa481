package uftp

// The schema names of all payload message kinds.
const (
	KindAgrPortfolioQuery             Kind = "AgrPortfolioQuery"
	KindAgrPortfolioQueryResponse     Kind = "AgrPortfolioQueryResponse"
	KindAgrPortfolioUpdate            Kind = "AgrPortfolioUpdate"
	KindAgrPortfolioUpdateResponse    Kind = "AgrPortfolioUpdateResponse"
	KindDsoPortfolioQuery             Kind = "DsoPortfolioQuery"
	KindDsoPortfolioQueryResponse     Kind = "DsoPortfolioQueryResponse"
	KindDsoPortfolioUpdate            Kind = "DsoPortfolioUpdate"
	KindDsoPortfolioUpdateResponse    Kind = "DsoPortfolioUpdateResponse"
	KindDPrognosis                    Kind = "DPrognosis"
	KindDPrognosisResponse            Kind = "DPrognosisResponse"
	KindFlexRequest                   Kind = "FlexRequest"
	KindFlexRequestResponse           Kind = "FlexRequestResponse"
	KindFlexOffer                     Kind = "FlexOffer"
	KindFlexOfferResponse             Kind = "FlexOfferResponse"
	KindFlexOfferRevocation           Kind = "FlexOfferRevocation"
	KindFlexOfferRevocationResponse   Kind = "FlexOfferRevocationResponse"
	KindFlexOrder                     Kind = "FlexOrder"
	KindFlexOrderResponse             Kind = "FlexOrderResponse"
	KindFlexReservationUpdate         Kind = "FlexReservationUpdate"
	KindFlexReservationUpdateResponse Kind = "FlexReservationUpdateResponse"
	KindFlexSettlement                Kind = "FlexSettlement"
	KindFlexSettlementResponse        Kind = "FlexSettlementResponse"
	KindMetering                      Kind = "Metering"
	KindMeteringResponse              Kind = "MeteringResponse"
	KindTestMessage                   Kind = "TestMessage"
	KindTestMessageResponse           Kind = "TestMessageResponse"
)

// Route names the only sender role and recipient role a message kind may
// travel between.
type Route struct {
	Sender    Role
	Recipient Role
}

// RoutingMap is the authoritative table of which role originates each
// message kind and which role receives it.
var RoutingMap = map[Kind]Route{
	KindAgrPortfolioQuery:             {RoleAGR, RoleCRO},
	KindAgrPortfolioQueryResponse:     {RoleCRO, RoleAGR},
	KindAgrPortfolioUpdate:            {RoleAGR, RoleCRO},
	KindAgrPortfolioUpdateResponse:    {RoleCRO, RoleAGR},
	KindDsoPortfolioQuery:             {RoleDSO, RoleCRO},
	KindDsoPortfolioQueryResponse:     {RoleCRO, RoleDSO},
	KindDsoPortfolioUpdate:            {RoleDSO, RoleCRO},
	KindDsoPortfolioUpdateResponse:    {RoleCRO, RoleDSO},
	KindDPrognosis:                    {RoleAGR, RoleDSO},
	KindDPrognosisResponse:            {RoleDSO, RoleAGR},
	KindFlexRequest:                   {RoleDSO, RoleAGR},
	KindFlexRequestResponse:           {RoleAGR, RoleDSO},
	KindFlexOffer:                     {RoleAGR, RoleDSO},
	KindFlexOfferResponse:             {RoleDSO, RoleAGR},
	KindFlexOfferRevocation:           {RoleAGR, RoleDSO},
	KindFlexOfferRevocationResponse:   {RoleDSO, RoleAGR},
	KindFlexOrder:                     {RoleDSO, RoleAGR},
	KindFlexOrderResponse:             {RoleAGR, RoleDSO},
	KindFlexReservationUpdate:         {RoleDSO, RoleAGR},
	KindFlexReservationUpdateResponse: {RoleAGR, RoleDSO},
	KindFlexSettlement:                {RoleDSO, RoleAGR},
	KindFlexSettlementResponse:        {RoleAGR, RoleDSO},
	KindMetering:                      {RoleAGR, RoleDSO},
	KindMeteringResponse:              {RoleDSO, RoleAGR},
}

// AcceptableMessages lists, per role, the message kinds a service
// running that role is willing to receive. Anything else is rejected as
// an invalid message.
var AcceptableMessages = map[Role][]Kind{
	RoleAGR: {
		KindAgrPortfolioQueryResponse,
		KindAgrPortfolioUpdateResponse,
		KindDPrognosisResponse,
		KindFlexOfferResponse,
		KindFlexOfferRevocationResponse,
		KindFlexOrder,
		KindFlexRequest,
		KindFlexReservationUpdate,
		KindFlexSettlement,
		KindMeteringResponse,
	},
	RoleCRO: {
		KindAgrPortfolioQuery,
		KindAgrPortfolioUpdate,
		KindDsoPortfolioQuery,
		KindDsoPortfolioUpdate,
	},
	RoleDSO: {
		KindDPrognosis,
		KindDsoPortfolioQueryResponse,
		KindDsoPortfolioUpdateResponse,
		KindFlexOffer,
		KindFlexOfferRevocation,
		KindFlexOrderResponse,
		KindFlexRequestResponse,
		KindFlexReservationUpdateResponse,
		KindFlexSettlementResponse,
		KindMetering,
	},
}

// RequestResponseMap links each request kind to the kind that answers
// it.
var RequestResponseMap = map[Kind]Kind{
	KindAgrPortfolioQuery:     KindAgrPortfolioQueryResponse,
	KindAgrPortfolioUpdate:    KindAgrPortfolioUpdateResponse,
	KindDsoPortfolioQuery:     KindDsoPortfolioQueryResponse,
	KindDsoPortfolioUpdate:    KindDsoPortfolioUpdateResponse,
	KindDPrognosis:            KindDPrognosisResponse,
	KindFlexRequest:           KindFlexRequestResponse,
	KindFlexOffer:             KindFlexOfferResponse,
	KindFlexOfferRevocation:   KindFlexOfferRevocationResponse,
	KindFlexOrder:             KindFlexOrderResponse,
	KindFlexReservationUpdate: KindFlexReservationUpdateResponse,
	KindFlexSettlement:        KindFlexSettlementResponse,
	KindMetering:              KindMeteringResponse,
	KindTestMessage:           KindTestMessageResponse,
}

// Acceptable reports whether a service running the given role receives
// the given message kind. Test messages are acceptable to every role,
// so that connectivity checks and generic acknowledgements always get
// through.
func Acceptable(role Role, kind Kind) bool {
	if kind == KindTestMessage || kind == KindTestMessageResponse {
		return role.Valid()
	}
	for _, k := range AcceptableMessages[role] {
		if k == kind {
			return true
		}
	}
	return false
}

// NewMessage returns a fresh, empty instance of the given message kind.
func NewMessage(kind Kind) (PayloadMessage, bool) {
	ctor, ok := kindConstructors[kind]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// NewResponseFor returns a fresh response message of the kind that
// answers the given request kind.
func NewResponseFor(request Kind) (ResponseMessage, bool) {
	responseKind, ok := RequestResponseMap[request]
	if !ok {
		return nil, false
	}
	msg, ok := NewMessage(responseKind)
	if !ok {
		return nil, false
	}
	response, ok := msg.(ResponseMessage)
	return response, ok
}

var kindConstructors = map[Kind]func() PayloadMessage{
	KindAgrPortfolioQuery:             func() PayloadMessage { return &AgrPortfolioQuery{} },
	KindAgrPortfolioQueryResponse:     func() PayloadMessage { return &AgrPortfolioQueryResponse{} },
	KindAgrPortfolioUpdate:            func() PayloadMessage { return &AgrPortfolioUpdate{} },
	KindAgrPortfolioUpdateResponse:    func() PayloadMessage { return &AgrPortfolioUpdateResponse{} },
	KindDsoPortfolioQuery:             func() PayloadMessage { return &DsoPortfolioQuery{} },
	KindDsoPortfolioQueryResponse:     func() PayloadMessage { return &DsoPortfolioQueryResponse{} },
	KindDsoPortfolioUpdate:            func() PayloadMessage { return &DsoPortfolioUpdate{} },
	KindDsoPortfolioUpdateResponse:    func() PayloadMessage { return &DsoPortfolioUpdateResponse{} },
	KindDPrognosis:                    func() PayloadMessage { return &DPrognosis{} },
	KindDPrognosisResponse:            func() PayloadMessage { return &DPrognosisResponse{} },
	KindFlexRequest:                   func() PayloadMessage { return &FlexRequest{} },
	KindFlexRequestResponse:           func() PayloadMessage { return &FlexRequestResponse{} },
	KindFlexOffer:                     func() PayloadMessage { return &FlexOffer{} },
	KindFlexOfferResponse:             func() PayloadMessage { return &FlexOfferResponse{} },
	KindFlexOfferRevocation:           func() PayloadMessage { return &FlexOfferRevocation{} },
	KindFlexOfferRevocationResponse:   func() PayloadMessage { return &FlexOfferRevocationResponse{} },
	KindFlexOrder:                     func() PayloadMessage { return &FlexOrder{} },
	KindFlexOrderResponse:             func() PayloadMessage { return &FlexOrderResponse{} },
	KindFlexReservationUpdate:         func() PayloadMessage { return &FlexReservationUpdate{} },
	KindFlexReservationUpdateResponse: func() PayloadMessage { return &FlexReservationUpdateResponse{} },
	KindFlexSettlement:                func() PayloadMessage { return &FlexSettlement{} },
	KindFlexSettlementResponse:        func() PayloadMessage { return &FlexSettlementResponse{} },
	KindMetering:                      func() PayloadMessage { return &Metering{} },
	KindMeteringResponse:              func() PayloadMessage { return &MeteringResponse{} },
	KindTestMessage:                   func() PayloadMessage { return &TestMessage{} },
	KindTestMessageResponse:           func() PayloadMessage { return &TestMessageResponse{} },
}
