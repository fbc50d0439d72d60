package structures

// AWSCredentials overrides the default credential chain when both keys are set, e.g. for LocalStack.
type AWSCredentials struct {
	AccessKeyID     string `yaml:"accessKeyId"`
	SecretAccessKey string `yaml:"secretAccessKey"`
}

func (c AWSCredentials) Static() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}
