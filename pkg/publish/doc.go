// Package publish stores rendered chart snapshots.
//
// A Store puts named objects somewhere durable: FileStore writes below a
// local directory, S3Store uploads to a bucket. Publisher renders a chart to
// SVG and PNG and puts both through a Store.
//
//	store := publish.NewS3Store(publish.NewS3Client("eu-west-1", ""), "charts", "nightly/")
//	urls, err := publish.NewPublisher(store).Publish(ctx, "latency", chart)
package publish
