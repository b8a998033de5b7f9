package handler

import "lost-found/internal/service"

type Handlers struct {
	Report       *ReportHandler
	Notification *NotificationHandler
	Audit        *AuditHandler
	Dashboard    *DashboardHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Report:       NewReportHandler(services.Report),
		Notification: NewNotificationHandler(services.Notification),
		Audit:        NewAuditHandler(services.Report, services.Audit),
		Dashboard:    NewDashboardHandler(services.Dashboard),
	}
}
