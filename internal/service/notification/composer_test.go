package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lost-found/internal/domain"
	"lost-found/internal/pkg/i18n"
)

func newTestComposer(t *testing.T) *Composer {
	t.Helper()
	catalog, err := i18n.LoadDefault()
	require.NoError(t, err)
	return NewComposer(catalog)
}

func TestComposer_ReportRegistered(t *testing.T) {
	c := newTestComposer(t)

	t.Run("missing report gets one confirmation", func(t *testing.T) {
		msgs := c.ReportRegistered(&domain.Report{Type: domain.ReportTypeMissing, Title: "wallet"})

		require.Len(t, msgs, 1)
		assert.Equal(t, domain.NotifReportRegistered, msgs[0].Type)
		assert.Equal(t, "📝 Your Missing Report is Registered", msgs[0].Title.EN)
		assert.Equal(t, `Your missing report "wallet" has been registered. We will keep you updated.`, msgs[0].Body.EN)
		assert.Equal(t, `تم تسجيل بلاغ الفقد "wallet". سنقوم بالبحث ومتابعة حالته.`, msgs[0].Body.AR)
		assert.Nil(t, msgs[0].Action)
	})

	t.Run("found report gets confirmation then delivery instructions", func(t *testing.T) {
		msgs := c.ReportRegistered(&domain.Report{Type: domain.ReportTypeFound, Title: "keys"})

		require.Len(t, msgs, 2)
		assert.Equal(t, domain.NotifReportRegistered, msgs[0].Type)
		assert.Equal(t, `Your found report "keys" has been registered. We will attempt to match it with missing reports.`, msgs[0].Body.EN)
		assert.Nil(t, msgs[0].Action)

		assert.Equal(t, domain.NotifDeliveryInstructions, msgs[1].Type)
		assert.Equal(t, "📍 Proceed to Deliver the Item", msgs[1].Title.EN)
		assert.Equal(t, "📍 توجيه لتسليم الغرض", msgs[1].Title.AR)
		require.NotNil(t, msgs[1].Action)
		assert.Equal(t, "/map", *msgs[1].Action)
	})

	t.Run("missing title interpolates as empty", func(t *testing.T) {
		msgs := c.ReportRegistered(&domain.Report{Type: domain.ReportTypeMissing})

		require.Len(t, msgs, 1)
		assert.Equal(t, `Your missing report "" has been registered. We will keep you updated.`, msgs[0].Body.EN)
	})

	t.Run("unknown type produces nothing", func(t *testing.T) {
		assert.Empty(t, c.ReportRegistered(&domain.Report{Type: "other"}))
	})
}

func TestComposer_StatusChanged(t *testing.T) {
	c := newTestComposer(t)

	tests := []struct {
		name      string
		status    domain.ReportStatus
		wantEN    string
		wantAR    string
		wantBody  string
		hasAction bool
	}{
		{
			name:     "delivered to client",
			status:   domain.StatusDeliveredToClient,
			wantEN:   "🎉 Item Delivered",
			wantAR:   "🎉 تم تسليم الغرض",
			wantBody: "Your lost item has been successfully delivered. Have a great day! 🤍",
		},
		{
			name:     "received",
			status:   domain.StatusReceived,
			wantEN:   "📥 Item Received",
			wantAR:   "📥 تم استلام الغرض",
			wantBody: "The item has been successfully received from you. Thank you for your honesty and cooperation! 🌟",
		},
		{
			name:      "matched carries the map action",
			status:    domain.StatusMatched,
			wantEN:    "🎯 Match Confirmed",
			wantAR:    "🎯 تأكيد التطابق",
			wantBody:  "The item matching your lost report has been confirmed! Please head to the Lost and Found office to collect it. 📍",
			hasAction: true,
		},
		{
			name:     "labelled status uses generic template",
			status:   domain.StatusClosed,
			wantEN:   "🔄 Report Status Updated",
			wantAR:   "🔄 تحديث حالة البلاغ",
			wantBody: `Your report "black bag" status updated to Closed`,
		},
		{
			name:     "legacy delivered label",
			status:   domain.StatusDelivered,
			wantEN:   "🔄 Report Status Updated",
			wantAR:   "🔄 تحديث حالة البلاغ",
			wantBody: `Your report "black bag" status updated to Delivered`,
		},
		{
			name:     "unknown status shown verbatim",
			status:   "awaiting_pickup",
			wantEN:   "🔄 Report Status Updated",
			wantAR:   "🔄 تحديث حالة البلاغ",
			wantBody: `Your report "black bag" status updated to awaiting_pickup`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := c.StatusChanged(&domain.Report{Title: "black bag", Status: tt.status})

			assert.Equal(t, domain.NotifStatusChanged, msg.Type)
			assert.Equal(t, tt.wantEN, msg.Title.EN)
			assert.Equal(t, tt.wantAR, msg.Title.AR)
			assert.Equal(t, tt.wantBody, msg.Body.EN)
			if tt.hasAction {
				require.NotNil(t, msg.Action)
				assert.Equal(t, "/map", *msg.Action)
			} else {
				assert.Nil(t, msg.Action)
			}
		})
	}
}

func TestComposer_StatusChangedArabicLabels(t *testing.T) {
	c := newTestComposer(t)

	msg := c.StatusChanged(&domain.Report{Title: "حقيبة", Status: domain.StatusRejected})
	assert.Equal(t, `تم تحديث حالة بلاغ "حقيبة" إلى مرفوض`, msg.Body.AR)

	msg = c.StatusChanged(&domain.Report{Title: "حقيبة", Status: "on_hold"})
	assert.Equal(t, `تم تحديث حالة بلاغ "حقيبة" إلى on_hold`, msg.Body.AR)
}

func TestComposer_MatchMessages(t *testing.T) {
	c := newTestComposer(t)

	found := c.MatchFound(&domain.Match{Title: "black backpack"})
	assert.Equal(t, domain.NotifMatchFound, found.Type)
	assert.Equal(t, "🎯 Match Found!", found.Title.EN)
	assert.Equal(t, `A matching item has been found for your report "black backpack".`, found.Body.EN)
	assert.Equal(t, `تم العثور على غرض مشابه لبلاغك "black backpack".`, found.Body.AR)
	assert.Nil(t, found.Action)

	paired := c.MatchedWithMissing()
	assert.Equal(t, domain.NotifMatchedWithMissing, paired.Type)
	assert.Equal(t, "🎯 Matched with Missing Item!", paired.Title.EN)
	assert.Equal(t, "🎯 تطابق مع غرض مفقود!", paired.Title.AR)
}
