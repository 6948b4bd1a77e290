package db

import (
	"fmt"
	"strconv"

	"github.com/Cable-s/PianoGame/constants"
	"github.com/Cable-s/PianoGame/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

const batchLimit = 10

// GetScoreMetadatas fetches library metadata for up to 10 score filenames,
// keyed by filename. Files with no metadata are simply absent from the
// result.
func GetScoreMetadatas(filenames []string) (map[string]model.ScoreMetadata, error) {
	if len(filenames) > batchLimit {
		return nil, fmt.Errorf("at most %v filenames per batch", batchLimit)
	}

	res := make(map[string]model.ScoreMetadata)
	if len(filenames) == 0 {
		return res, nil
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		key := make(map[string]*dynamodb.AttributeValue)
		key["PK"] = &dynamodb.AttributeValue{
			S: aws.String(filename),
		}
		keys = append(keys, key)
	}

	endpoint := constants.GetMetadataEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("creating DynamoDB session: %w", err)
	}

	client := dynamodb.New(sess)
	table := constants.GetMetadataTable()
	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			table: {Keys: keys},
		},
	}
	dbres, err := client.BatchGetItem(input)
	if err != nil {
		return nil, fmt.Errorf("fetching score metadata: %w", err)
	}

	for _, v := range dbres.Responses[table] {
		var m model.ScoreMetadata
		if v["Difficulty"] != nil && v["Difficulty"].N != nil {
			difficulty, _ := strconv.ParseUint(*v["Difficulty"].N, 10, 32)
			m.Difficulty = uint(difficulty)
		}
		if v["Title"] != nil && v["Title"].S != nil {
			m.Title = *v["Title"].S
		}
		if v["Composer"] != nil && v["Composer"].S != nil {
			m.Composer = *v["Composer"].S
		}
		res[*v["PK"].S] = m
	}

	return res, nil
}
