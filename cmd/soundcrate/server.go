package main

import (
	"net/http"

	"soundcrate/internal/app/albums"
	"soundcrate/internal/app/collaborations"
	"soundcrate/internal/app/playlists"
	"soundcrate/internal/app/songs"
	"soundcrate/internal/app/users"
	"soundcrate/internal/auth"
	"soundcrate/internal/cache"
	"soundcrate/internal/httpapi"
	"soundcrate/internal/store"
)

func newHTTPHandler(cfg Config, dataStore *store.Store, likeCache cache.Cache) http.Handler {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	userSvc := users.New(dataStore, tokens)
	albumSvc := albums.New(dataStore, likeCache)
	songSvc := songs.New(dataStore)

	collabSvc := collaborations.New(dataStore)
	playlistSvc := playlists.New(dataStore, collabSvc)

	server := httpapi.New(userSvc, albumSvc, songSvc, playlistSvc, collabSvc, tokens)
	return httpapi.CORS(cfg.AllowedOrigins)(server.Routes())
}
