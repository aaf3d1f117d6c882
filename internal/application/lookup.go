package application

import (
	"fmt"
	"strconv"

	"github.com/jmanzanog/t212-tickers/internal/domain"
)

func exchangeNameFor(code domain.ExchangeCode) (string, error) {
	name, ok := code.ExchangeName()
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownExchangeCode, string(code))
	}
	return name, nil
}

// ExchangeCodeToScheduleIDs collects the working schedule ids of every
// exchange whose name is exactly the one behind each code. Ids are returned
// in code order and duplicates are kept.
func (c *Client) ExchangeCodeToScheduleIDs(codes []domain.ExchangeCode) ([]int64, error) {
	var ids []int64
	for _, code := range codes {
		name, err := exchangeNameFor(code)
		if err != nil {
			return nil, err
		}
		for _, e := range c.exchanges {
			if e.Name == name {
				ids = append(ids, e.ScheduleIDs()...)
			}
		}
	}
	return ids, nil
}

// ScheduleIDToExchangeCode finds the first exchange owning the schedule and
// maps its name back to a code. London venues all come back as LON.
func (c *Client) ScheduleIDToExchangeCode(scheduleID int64) (domain.ExchangeCode, error) {
	for _, e := range c.exchanges {
		if !e.HasSchedule(scheduleID) {
			continue
		}
		code, ok := domain.ExchangeCodeForName(e.Name)
		if !ok {
			return "", &domain.LookupError{Kind: "exchange name", Key: e.Name}
		}
		return code, nil
	}
	return "", &domain.LookupError{Kind: "working schedule", Key: strconv.FormatInt(scheduleID, 10)}
}

func (c *Client) ExchangeIDForCode(code domain.ExchangeCode) (int64, error) {
	name, err := exchangeNameFor(code)
	if err != nil {
		return 0, err
	}
	for _, e := range c.exchanges {
		if e.Name == name {
			return e.ID, nil
		}
	}
	return 0, &domain.LookupError{Kind: "exchange", Key: string(code)}
}

func (c *Client) ScheduleIDsForExchange(exchangeID int64) ([]int64, error) {
	for _, e := range c.exchanges {
		if e.ID == exchangeID {
			return e.ScheduleIDs(), nil
		}
	}
	return nil, &domain.LookupError{Kind: "exchange id", Key: strconv.FormatInt(exchangeID, 10)}
}
