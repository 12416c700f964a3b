package billing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test"

func sign(payload string, at time.Time) string {
	ts := at.Unix()
	mac := hmac.New(sha256.New, []byte(testSecret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func eventJSON(typ, object string) string {
	return fmt.Sprintf(`{"id":"evt_1","object":"event","api_version":"2020-08-27","type":%q,"data":{"object":%s}}`, typ, object)
}

func TestParseEventExtractsReferences(t *testing.T) {
	s := NewStripe("sk_test", testSecret)

	tests := []struct {
		name     string
		typ      string
		object   string
		customer string
		sub      string
		status   string
	}{
		{
			name:     "checkout session",
			typ:      EventCheckoutCompleted,
			object:   `{"object":"checkout.session","id":"cs_1","customer":"cus_1","subscription":"sub_1"}`,
			customer: "cus_1",
			sub:      "sub_1",
		},
		{
			name:     "invoice with expanded customer",
			typ:      EventInvoicePaymentFailed,
			object:   `{"object":"invoice","id":"in_1","customer":{"id":"cus_2","object":"customer"},"subscription":null}`,
			customer: "cus_2",
		},
		{
			name:     "subscription update",
			typ:      EventSubscriptionUpdated,
			object:   `{"object":"subscription","id":"sub_3","customer":"cus_3","status":"unpaid"}`,
			customer: "cus_3",
			sub:      "sub_3",
			status:   "unpaid",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := eventJSON(tt.typ, tt.object)
			ev, err := s.ParseEvent([]byte(payload), sign(payload, time.Now()))
			require.NoError(t, err)
			assert.Equal(t, tt.typ, ev.Type)
			assert.Equal(t, tt.customer, ev.CustomerID)
			assert.Equal(t, tt.sub, ev.SubscriptionID)
			assert.Equal(t, tt.status, ev.Status)
		})
	}
}

func TestParseEventRejectsBadSignatures(t *testing.T) {
	s := NewStripe("sk_test", testSecret)
	payload := eventJSON(EventCheckoutCompleted, `{"object":"checkout.session","customer":"cus_1"}`)

	cases := map[string]string{
		"missing":  "",
		"garbage":  "t=1,v1=deadbeef",
		"tampered": sign(payload+" ", time.Now()),
		"stale":    sign(payload, time.Now().Add(-time.Hour)),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.ParseEvent([]byte(payload), header)
			assert.ErrorIs(t, err, ErrInvalidSignature)
		})
	}
}

func TestRefID(t *testing.T) {
	assert.Equal(t, "cus_1", refID([]byte(`"cus_1"`)))
	assert.Equal(t, "cus_2", refID([]byte(`{"id":"cus_2"}`)))
	assert.Empty(t, refID([]byte(`null`)))
	assert.Empty(t, refID(nil))
}

func TestDisabledProvider(t *testing.T) {
	var p Provider = Disabled{}
	_, err := p.CreateCustomer(context.Background(), "a@x.com", "A", "u1")
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = p.ParseEvent([]byte("{}"), "sig")
	assert.ErrorIs(t, err, ErrDisabled)
}
