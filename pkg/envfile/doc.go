/*
Package envfile renders the collected credentials into environment documents
(a local ".env" and a production ".env.prod") and writes them to disk.

Rendering reads only SetupProgress.APIKeys and SetupProgress.ServiceConfigs;
any value that was never collected is replaced by a recognizable placeholder,
which Placeholders can later report.
*/
package envfile
