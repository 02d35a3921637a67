// Package tributary provides a data lake ETL that extracts song metadata
// and listen-event JSON from object storage, transforms them into a star
// schema, and loads the tables back as partitioned Parquet.
//
// Quick start:
//
//	r, err := tributary.New(
//	    tributary.WithInput("s3://udacity-dend/"),
//	    tributary.WithOutput("s3://my-warehouse/lake/"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := r.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.TableRows["songplays"], "plays")
//
// The produced tables are songs, artists, users, time, and songplays.
// Each run fully overwrites a table's objects, so reruns are idempotent.
package tributary
