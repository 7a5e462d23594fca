package metadata

import (
	"fmt"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"github.com/lcrosetto/midicanon/config"
	"github.com/lcrosetto/midicanon/mididict"
)

// dbLookup fetches catalog metadata (artist, title, release, year) for the
// source file from a DynamoDB table keyed by file name. Missing rows are
// not an error; a Document without catalog data simply gains no keys.
func dbLookup(src Source, d *mididict.Document, args config.MetadataArgs) (map[string]string, error) {
	table := args.TableName
	if table == "" {
		table = "midicanon-metadata"
	}
	region := args.Region
	if region == "" {
		region = "localhost"
	}

	awsCfg := &aws.Config{Region: aws.String(region)}
	if args.Endpoint != "" {
		awsCfg.Endpoint = aws.String(args.Endpoint)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("error creating dynamodb session: %w", err)
	}

	client := dynamodb.New(sess)
	out, err := client.GetItem(&dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(filepath.Base(src.Path))},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error from dynamodb: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	res := make(map[string]string)
	for attr, key := range map[string]string{
		"Artist":  "artist",
		"Title":   "title",
		"Release": "release",
	} {
		if v := out.Item[attr]; v != nil && v.S != nil {
			res[key] = *v.S
		}
	}
	if v := out.Item["Year"]; v != nil && v.N != nil {
		res["year"] = *v.N
	}

	return res, nil
}
