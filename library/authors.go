package library

import (
	"context"
	"log"
	"net/http"
	"time"

	"readira/db"
	"readira/models"
	"readira/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/authors
func GetAuthors(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 100)
	findOpts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}}).SetSkip(skip).SetLimit(limit)

	cursor, err := db.AuthorsCollection.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		log.Println("GetAuthors Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve authors")
		return
	}
	defer cursor.Close(ctx)

	var authors []models.Author
	if err := cursor.All(ctx, &authors); err != nil {
		log.Println("GetAuthors cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading authors")
		return
	}
	if len(authors) == 0 {
		authors = []models.Author{}
	}

	utils.RespondWithJSON(w, http.StatusOK, authors)
}

// GET /api/authors/:authorid  (login required)
func GetAuthor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	authorID := ps.ByName("authorid")

	var author models.Author
	err := db.AuthorsCollection.FindOne(ctx, bson.M{"authorid": authorID}).Decode(&author)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Author not found")
		return
	}
	if err != nil {
		log.Println("GetAuthor FindOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve author")
		return
	}

	// The author's catalog, for the detail page
	cursor, err := db.MaterialsCollection.Find(ctx, bson.M{"authorid": authorID, "enabled": true},
		options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		log.Println("GetAuthor materials error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve author")
		return
	}
	defer cursor.Close(ctx)

	var books []models.ReadingMaterial
	if err := cursor.All(ctx, &books); err != nil {
		log.Println("GetAuthor cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve author")
		return
	}
	if len(books) == 0 {
		books = []models.ReadingMaterial{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"author": author,
		"books":  books,
	})
}

// GET /api/genres
func GetGenres(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := db.GenresCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		log.Println("GetGenres Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve genres")
		return
	}
	defer cursor.Close(ctx)

	var genres []models.Genre
	if err := cursor.All(ctx, &genres); err != nil {
		log.Println("GetGenres cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading genres")
		return
	}
	if len(genres) == 0 {
		genres = []models.Genre{}
	}

	utils.RespondWithJSON(w, http.StatusOK, genres)
}

// GET /api/genres/:genreid
func GetGenre(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	genreID := ps.ByName("genreid")

	var genre models.Genre
	err := db.GenresCollection.FindOne(ctx, bson.M{"genreid": genreID}).Decode(&genre)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Genre not found")
		return
	}
	if err != nil {
		log.Println("GetGenre FindOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve genre")
		return
	}

	cursor, err := db.MaterialsCollection.Find(ctx, bson.M{"genreid": genreID, "enabled": true},
		options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		log.Println("GetGenre materials error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve genre")
		return
	}
	defer cursor.Close(ctx)

	var materials []models.ReadingMaterial
	if err := cursor.All(ctx, &materials); err != nil {
		log.Println("GetGenre cursor.All error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve genre")
		return
	}
	if len(materials) == 0 {
		materials = []models.ReadingMaterial{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"genre":     genre,
		"materials": materials,
	})
}
