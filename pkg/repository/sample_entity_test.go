package repository

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

type SampleEntity struct {
	Id    int64  `db:"id"`
	Name  string `db:"name"`
	Score int    `db:"score"`
}

func (e SampleEntity) GetID() int64 {
	return e.Id
}

func (e SampleEntity) GetSchema() Schema {
	return Schema{
		Table: "sample_entities",
		ID:    Column{Property: "id", Name: "id"},
		Columns: []Column{
			{Property: "name", Name: "name"},
			{Property: "score", Name: "score"},
		},
	}
}

func (e SampleEntity) ToMap() map[string]any {
	return map[string]any{"name": e.Name, "score": e.Score}
}

func (e *SampleEntity) AssignID(id int64) {
	e.Id = id
}

func InsertManyRecordsToSampleEntity(db *sql.DB, entities []SampleEntity) ([]int64, error) {
	var ids []int64
	for _, entity := range entities {
		id, err := InsertRecordsToSampleEntity(db, entity)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func InsertRecordsToSampleEntity(db *sql.DB, entity SampleEntity) (int64, error) {
	query := "INSERT INTO sample_entities (name, score) VALUES (?, ?)"
	result, err := db.Exec(query, entity.Name, entity.Score)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func CreateSampleEntityTable(t *testing.T, db *sql.DB) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS sample_entities (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		score INT NOT NULL DEFAULT 0
	)`)
	require.NoError(t, err)
}

func SelectSampleEntityByID(db *sql.DB, id int64) (SampleEntity, error) {
	var entity SampleEntity
	query := "SELECT id, name, score FROM sample_entities WHERE id = ?"
	err := db.QueryRow(query, id).Scan(&entity.Id, &entity.Name, &entity.Score)
	if err != nil {
		return SampleEntity{}, err
	}
	return entity, nil
}
