package tui

import "github.com/jask/profileview/internal/service"

type detailsMsg struct {
	username string
	details  service.Details
	err      error
}

type cardsMsg []service.FriendCard

type usernamesMsg []string

type trackDoneMsg struct {
	verb     string
	username string
	err      error
}
