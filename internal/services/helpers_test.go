package services_test

import (
	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-user-posts/internal/models"
)

type eventTypeMatcher string

func (m eventTypeMatcher) Matches(x interface{}) bool {
	e, ok := x.(models.Event)
	return ok && e.Type == string(m) && e.EventID != ""
}

func (m eventTypeMatcher) String() string {
	return "event of type " + string(m)
}

func eventOfType(t string) gomock.Matcher {
	return eventTypeMatcher(t)
}
