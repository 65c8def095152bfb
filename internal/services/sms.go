package services

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"golang.org/x/time/rate"

	"github.com/fairwayclub/fantasy-golf/pkg/config"
)

// SMSService delivers verification codes to phone numbers
type SMSService interface {
	SendOTP(phoneNumber, code string) error
}

// NewSMSServiceFromConfig picks the provider named in config. Anything other
// than "twilio" gets the mock, which just logs the code.
func NewSMSServiceFromConfig(cfg *config.Config, logger *logrus.Logger) SMSService {
	if cfg.SMSProvider == "twilio" && cfg.TwilioAccountSID != "" {
		return NewTwilioSMSService(cfg, logger)
	}
	return &MockSMSService{logger: logger}
}

// MockSMSService logs codes instead of sending them
type MockSMSService struct {
	logger *logrus.Logger
}

func NewMockSMSService(logger *logrus.Logger) *MockSMSService {
	return &MockSMSService{logger: logger}
}

func (s *MockSMSService) SendOTP(phoneNumber, code string) error {
	s.logger.WithFields(logrus.Fields{
		"phone": phoneNumber,
		"code":  code,
	}).Info("Mock SMS: verification code")
	return nil
}

// TwilioSMSService sends codes through Twilio with a per-phone rate limit
type TwilioSMSService struct {
	client     *twilio.RestClient
	fromNumber string
	logger     *logrus.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	perHour  int
}

func NewTwilioSMSService(cfg *config.Config, logger *logrus.Logger) *TwilioSMSService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	perHour := cfg.SMSPerHour
	if perHour <= 0 {
		perHour = 3
	}
	return &TwilioSMSService{
		client:     client,
		fromNumber: cfg.TwilioFromNumber,
		logger:     logger,
		limiters:   make(map[string]*rate.Limiter),
		perHour:    perHour,
	}
}

func (s *TwilioSMSService) limiterFor(phoneNumber string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, ok := s.limiters[phoneNumber]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(float64(s.perHour)/3600), s.perHour)
		s.limiters[phoneNumber] = limiter
	}
	return limiter
}

func (s *TwilioSMSService) SendOTP(phoneNumber, code string) error {
	if !s.limiterFor(phoneNumber).Allow() {
		return fmt.Errorf("too many verification codes sent to %s, try again later", phoneNumber)
	}

	body := fmt.Sprintf("Your Fairway Club verification code is %s. It expires in 10 minutes.", code)
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phoneNumber)
	params.SetFrom(s.fromNumber)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		s.logger.Errorf("Twilio send to %s failed: %v", phoneNumber, err)
		return fmt.Errorf("failed to send verification code: %w", err)
	}

	s.logger.WithField("phone", phoneNumber).Info("Verification code sent")
	return nil
}
