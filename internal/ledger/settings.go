package ledger

import (
	"context" // Context for storage operations
	"maps"    // Copying the payment method map

	"earning_admin/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
)

// SaveAnnouncement replaces the announcement text
func (s *Service) SaveAnnouncement(ctx context.Context, text string) error {
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		doc.Settings.Announcement = text
		return nil
	})
	if err == nil {
		logrus.Info("Announcement updated")
	}
	return err
}

// SavePaymentMethods replaces the whole payment method map
func (s *Service) SavePaymentMethods(ctx context.Context, methods map[string]string) error {
	copied := make(map[string]string, len(methods))
	maps.Copy(copied, methods) // The caller keeps its map
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		doc.Settings.PaymentMethods = copied
		return nil
	})
	if err == nil {
		logrus.WithField("methods", len(copied)).Info("Payment methods updated")
	}
	return err
}
