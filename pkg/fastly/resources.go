package fastly

// Service represents a Fastly service.
type Service struct {
	Timestamps `yaml:",inline"`

	ID         string     `json:"id"                    yaml:"id"`
	Name       string     `json:"name"                  yaml:"name"`
	Comment    string     `json:"comment,omitempty"     yaml:"comment,omitempty"`
	CustomerID string     `json:"customer_id,omitempty" yaml:"customer_id,omitempty"`
	Type       string     `json:"type,omitempty"        yaml:"type,omitempty"`
	Version    FlexInt    `json:"version,omitempty"     yaml:"version,omitempty"`
	Versions   []*Version `json:"versions,omitempty"    yaml:"versions,omitempty"`
}

// ActiveVersion returns the active version number, or 0 when none is active.
func (s *Service) ActiveVersion() int {
	for _, version := range s.Versions {
		if version.Active {
			return version.Number.Int()
		}
	}

	return s.Version.Int()
}

// Version represents one version of a service configuration.
type Version struct {
	Timestamps `yaml:",inline"`

	Number    FlexInt `json:"number"              yaml:"number"`
	ServiceID string  `json:"service_id"          yaml:"service_id"`
	Comment   string  `json:"comment,omitempty"   yaml:"comment,omitempty"`
	Active    bool    `json:"active"              yaml:"active"`
	Locked    bool    `json:"locked"              yaml:"locked"`
	Deployed  bool    `json:"deployed,omitempty"  yaml:"deployed,omitempty"`
	Staging   bool    `json:"staging,omitempty"   yaml:"staging,omitempty"`
	Testing   bool    `json:"testing,omitempty"   yaml:"testing,omitempty"`
}

// Healthcheck represents a backend health check.
type Healthcheck struct {
	Timestamps `yaml:",inline"`

	ServiceID        string   `json:"service_id"                  yaml:"service_id"`
	Version          FlexInt  `json:"version"                     yaml:"version"`
	Name             string   `json:"name"                        yaml:"name"`
	Comment          string   `json:"comment,omitempty"           yaml:"comment,omitempty"`
	Method           string   `json:"method,omitempty"            yaml:"method,omitempty"`
	Host             string   `json:"host,omitempty"              yaml:"host,omitempty"`
	Path             string   `json:"path,omitempty"              yaml:"path,omitempty"`
	HTTPVersion      string   `json:"http_version,omitempty"      yaml:"http_version,omitempty"`
	Timeout          *FlexInt `json:"timeout,omitempty"           yaml:"timeout,omitempty"`
	CheckInterval    *FlexInt `json:"check_interval,omitempty"    yaml:"check_interval,omitempty"`
	ExpectedResponse *FlexInt `json:"expected_response,omitempty" yaml:"expected_response,omitempty"`
	Window           *FlexInt `json:"window,omitempty"            yaml:"window,omitempty"`
	Threshold        *FlexInt `json:"threshold,omitempty"         yaml:"threshold,omitempty"`
	Initial          *FlexInt `json:"initial,omitempty"           yaml:"initial,omitempty"`
	Headers          []string `json:"headers,omitempty"           yaml:"headers,omitempty"`
}

// CreateHealthcheckInput is the form body for creating a healthcheck.
type CreateHealthcheckInput struct {
	VersionTarget `yaml:"-"`

	Name             *string  `url:"name,omitempty"              yaml:"name,omitempty"`
	Comment          *string  `url:"comment,omitempty"           yaml:"comment,omitempty"`
	Method           *string  `url:"method,omitempty"            yaml:"method,omitempty"`
	Host             *string  `url:"host,omitempty"              yaml:"host,omitempty"`
	Path             *string  `url:"path,omitempty"              yaml:"path,omitempty"`
	HTTPVersion      *string  `url:"http_version,omitempty"      yaml:"http_version,omitempty"`
	Timeout          *int     `url:"timeout,omitempty"           yaml:"timeout,omitempty"`
	CheckInterval    *int     `url:"check_interval,omitempty"    yaml:"check_interval,omitempty"`
	ExpectedResponse *int     `url:"expected_response,omitempty" yaml:"expected_response,omitempty"`
	Window           *int     `url:"window,omitempty"            yaml:"window,omitempty"`
	Threshold        *int     `url:"threshold,omitempty"         yaml:"threshold,omitempty"`
	Initial          *int     `url:"initial,omitempty"           yaml:"initial,omitempty"`
	Headers          []string `url:"headers,omitempty,brackets"  yaml:"headers,omitempty"`
}

// UpdateHealthcheckInput is the form body for updating a healthcheck.
type UpdateHealthcheckInput struct {
	EndpointTarget `yaml:"-"`

	NewName          *string  `url:"name,omitempty"              yaml:"name,omitempty"`
	Comment          *string  `url:"comment,omitempty"           yaml:"comment,omitempty"`
	Method           *string  `url:"method,omitempty"            yaml:"method,omitempty"`
	Host             *string  `url:"host,omitempty"              yaml:"host,omitempty"`
	Path             *string  `url:"path,omitempty"              yaml:"path,omitempty"`
	HTTPVersion      *string  `url:"http_version,omitempty"      yaml:"http_version,omitempty"`
	Timeout          *int     `url:"timeout,omitempty"           yaml:"timeout,omitempty"`
	CheckInterval    *int     `url:"check_interval,omitempty"    yaml:"check_interval,omitempty"`
	ExpectedResponse *int     `url:"expected_response,omitempty" yaml:"expected_response,omitempty"`
	Window           *int     `url:"window,omitempty"            yaml:"window,omitempty"`
	Threshold        *int     `url:"threshold,omitempty"         yaml:"threshold,omitempty"`
	Initial          *int     `url:"initial,omitempty"           yaml:"initial,omitempty"`
	Headers          []string `url:"headers,omitempty,brackets"  yaml:"headers,omitempty"`
}

// LoggingCommon holds the fields shared by every logging endpoint.
type LoggingCommon struct {
	Timestamps `yaml:",inline"`

	ServiceID         string  `json:"service_id"                   yaml:"service_id"`
	Version           FlexInt `json:"version"                      yaml:"version"`
	Name              string  `json:"name"                         yaml:"name"`
	Placement         string  `json:"placement,omitempty"          yaml:"placement,omitempty"`
	ResponseCondition string  `json:"response_condition,omitempty" yaml:"response_condition,omitempty"`
	Format            string  `json:"format,omitempty"             yaml:"format,omitempty"`
	FormatVersion     FlexInt `json:"format_version,omitempty"     yaml:"format_version,omitempty"`
}

// LoggingGeneric holds the file-rotation fields of object-storage endpoints.
type LoggingGeneric struct {
	MessageType      string   `json:"message_type,omitempty"      yaml:"message_type,omitempty"`
	TimestampFormat  string   `json:"timestamp_format,omitempty"  yaml:"timestamp_format,omitempty"`
	CompressionCodec string   `json:"compression_codec,omitempty" yaml:"compression_codec,omitempty"`
	Period           FlexInt  `json:"period,omitempty"            yaml:"period,omitempty"`
	GzipLevel        *FlexInt `json:"gzip_level,omitempty"        yaml:"gzip_level,omitempty"`
}

// LoggingCommonInput holds the optional form fields shared by every endpoint.
// Name is not included: create inputs send it as a body field, update inputs
// address the endpoint by it.
type LoggingCommonInput struct {
	Placement         *string `url:"placement,omitempty"          yaml:"placement,omitempty"`
	ResponseCondition *string `url:"response_condition,omitempty" yaml:"response_condition,omitempty"`
	Format            *string `url:"format,omitempty"             yaml:"format,omitempty"`
	FormatVersion     *int    `url:"format_version,omitempty"     yaml:"format_version,omitempty"`
}

// LoggingGenericInput holds the optional file-rotation form fields.
type LoggingGenericInput struct {
	MessageType      *string `url:"message_type,omitempty"      yaml:"message_type,omitempty"`
	TimestampFormat  *string `url:"timestamp_format,omitempty"  yaml:"timestamp_format,omitempty"`
	CompressionCodec *string `url:"compression_codec,omitempty" yaml:"compression_codec,omitempty"`
	Period           *int    `url:"period,omitempty"            yaml:"period,omitempty"`
	GzipLevel        *int    `url:"gzip_level,omitempty"        yaml:"gzip_level,omitempty"`
}

// LoggingDigitalocean is a DigitalOcean Spaces logging endpoint.
type LoggingDigitalocean struct {
	LoggingCommon  `yaml:",inline"`
	LoggingGeneric `yaml:",inline"`

	BucketName string `json:"bucket_name,omitempty" yaml:"bucket_name,omitempty"`
	AccessKey  string `json:"access_key,omitempty"  yaml:"access_key,omitempty"`
	SecretKey  string `json:"secret_key,omitempty"  yaml:"secret_key,omitempty"`
	Domain     string `json:"domain,omitempty"      yaml:"domain,omitempty"`
	Path       string `json:"path,omitempty"        yaml:"path,omitempty"`
	PublicKey  string `json:"public_key,omitempty"  yaml:"public_key,omitempty"`
}

// CreateDigitaloceanInput is the form body for creating a DigitalOcean endpoint.
type CreateDigitaloceanInput struct {
	VersionTarget       `yaml:"-"`
	LoggingCommonInput  `yaml:",inline"`
	LoggingGenericInput `yaml:",inline"`

	Name       *string `url:"name,omitempty"        yaml:"name,omitempty"`
	BucketName *string `url:"bucket_name,omitempty" yaml:"bucket_name,omitempty"`
	AccessKey  *string `url:"access_key,omitempty"  yaml:"access_key,omitempty"`
	SecretKey  *string `url:"secret_key,omitempty"  yaml:"secret_key,omitempty"`
	Domain     *string `url:"domain,omitempty"      yaml:"domain,omitempty"`
	Path       *string `url:"path,omitempty"        yaml:"path,omitempty"`
	PublicKey  *string `url:"public_key,omitempty"  yaml:"public_key,omitempty"`
}

// UpdateDigitaloceanInput is the form body for updating a DigitalOcean endpoint.
type UpdateDigitaloceanInput struct {
	EndpointTarget      `yaml:"-"`
	LoggingCommonInput  `yaml:",inline"`
	LoggingGenericInput `yaml:",inline"`

	NewName    *string `url:"name,omitempty"        yaml:"name,omitempty"`
	BucketName *string `url:"bucket_name,omitempty" yaml:"bucket_name,omitempty"`
	AccessKey  *string `url:"access_key,omitempty"  yaml:"access_key,omitempty"`
	SecretKey  *string `url:"secret_key,omitempty"  yaml:"secret_key,omitempty"`
	Domain     *string `url:"domain,omitempty"      yaml:"domain,omitempty"`
	Path       *string `url:"path,omitempty"        yaml:"path,omitempty"`
	PublicKey  *string `url:"public_key,omitempty"  yaml:"public_key,omitempty"`
}

// LoggingS3 is an Amazon S3 logging endpoint.
type LoggingS3 struct {
	LoggingCommon  `yaml:",inline"`
	LoggingGeneric `yaml:",inline"`

	BucketName                   string  `json:"bucket_name,omitempty"                       yaml:"bucket_name,omitempty"`
	AccessKey                    string  `json:"access_key,omitempty"                        yaml:"access_key,omitempty"`
	SecretKey                    string  `json:"secret_key,omitempty"                        yaml:"secret_key,omitempty"`
	IAMRole                      string  `json:"iam_role,omitempty"                          yaml:"iam_role,omitempty"`
	Domain                       string  `json:"domain,omitempty"                            yaml:"domain,omitempty"`
	Path                         string  `json:"path,omitempty"                              yaml:"path,omitempty"`
	PublicKey                    string  `json:"public_key,omitempty"                        yaml:"public_key,omitempty"`
	Redundancy                   string  `json:"redundancy,omitempty"                        yaml:"redundancy,omitempty"`
	ServerSideEncryption         string  `json:"server_side_encryption,omitempty"            yaml:"server_side_encryption,omitempty"`
	ServerSideEncryptionKMSKeyID string  `json:"server_side_encryption_kms_key_id,omitempty" yaml:"server_side_encryption_kms_key_id,omitempty"`
	ACL                          string  `json:"acl,omitempty"                               yaml:"acl,omitempty"`
	FileMaxBytes                 FlexInt `json:"file_max_bytes,omitempty"                    yaml:"file_max_bytes,omitempty"`
}

// CreateS3Input is the form body for creating an S3 endpoint.
type CreateS3Input struct {
	VersionTarget       `yaml:"-"`
	LoggingCommonInput  `yaml:",inline"`
	LoggingGenericInput `yaml:",inline"`

	Name                         *string `url:"name,omitempty"                              yaml:"name,omitempty"`
	BucketName                   *string `url:"bucket_name,omitempty"                       yaml:"bucket_name,omitempty"`
	AccessKey                    *string `url:"access_key,omitempty"                        yaml:"access_key,omitempty"`
	SecretKey                    *string `url:"secret_key,omitempty"                        yaml:"secret_key,omitempty"`
	IAMRole                      *string `url:"iam_role,omitempty"                          yaml:"iam_role,omitempty"`
	Domain                       *string `url:"domain,omitempty"                            yaml:"domain,omitempty"`
	Path                         *string `url:"path,omitempty"                              yaml:"path,omitempty"`
	PublicKey                    *string `url:"public_key,omitempty"                        yaml:"public_key,omitempty"`
	Redundancy                   *string `url:"redundancy,omitempty"                        yaml:"redundancy,omitempty"`
	ServerSideEncryption         *string `url:"server_side_encryption,omitempty"            yaml:"server_side_encryption,omitempty"`
	ServerSideEncryptionKMSKeyID *string `url:"server_side_encryption_kms_key_id,omitempty" yaml:"server_side_encryption_kms_key_id,omitempty"`
	ACL                          *string `url:"acl,omitempty"                               yaml:"acl,omitempty"`
	FileMaxBytes                 *int    `url:"file_max_bytes,omitempty"                    yaml:"file_max_bytes,omitempty"`
}

// UpdateS3Input is the form body for updating an S3 endpoint.
type UpdateS3Input struct {
	EndpointTarget      `yaml:"-"`
	LoggingCommonInput  `yaml:",inline"`
	LoggingGenericInput `yaml:",inline"`

	NewName                      *string `url:"name,omitempty"                              yaml:"name,omitempty"`
	BucketName                   *string `url:"bucket_name,omitempty"                       yaml:"bucket_name,omitempty"`
	AccessKey                    *string `url:"access_key,omitempty"                        yaml:"access_key,omitempty"`
	SecretKey                    *string `url:"secret_key,omitempty"                        yaml:"secret_key,omitempty"`
	IAMRole                      *string `url:"iam_role,omitempty"                          yaml:"iam_role,omitempty"`
	Domain                       *string `url:"domain,omitempty"                            yaml:"domain,omitempty"`
	Path                         *string `url:"path,omitempty"                              yaml:"path,omitempty"`
	PublicKey                    *string `url:"public_key,omitempty"                        yaml:"public_key,omitempty"`
	Redundancy                   *string `url:"redundancy,omitempty"                        yaml:"redundancy,omitempty"`
	ServerSideEncryption         *string `url:"server_side_encryption,omitempty"            yaml:"server_side_encryption,omitempty"`
	ServerSideEncryptionKMSKeyID *string `url:"server_side_encryption_kms_key_id,omitempty" yaml:"server_side_encryption_kms_key_id,omitempty"`
	ACL                          *string `url:"acl,omitempty"                               yaml:"acl,omitempty"`
	FileMaxBytes                 *int    `url:"file_max_bytes,omitempty"                    yaml:"file_max_bytes,omitempty"`
}

// LoggingHTTPS is an HTTPS logging endpoint.
type LoggingHTTPS struct {
	LoggingCommon `yaml:",inline"`

	URL               string  `json:"url"                           yaml:"url"`
	Method            string  `json:"method,omitempty"              yaml:"method,omitempty"`
	ContentType       string  `json:"content_type,omitempty"        yaml:"content_type,omitempty"`
	HeaderName        string  `json:"header_name,omitempty"         yaml:"header_name,omitempty"`
	HeaderValue       string  `json:"header_value,omitempty"        yaml:"header_value,omitempty"`
	JSONFormat        string  `json:"json_format,omitempty"         yaml:"json_format,omitempty"`
	MessageType       string  `json:"message_type,omitempty"        yaml:"message_type,omitempty"`
	RequestMaxEntries FlexInt `json:"request_max_entries,omitempty" yaml:"request_max_entries,omitempty"`
	RequestMaxBytes   FlexInt `json:"request_max_bytes,omitempty"   yaml:"request_max_bytes,omitempty"`
	TLSCACert         string  `json:"tls_ca_cert,omitempty"         yaml:"tls_ca_cert,omitempty"`
	TLSClientCert     string  `json:"tls_client_cert,omitempty"     yaml:"tls_client_cert,omitempty"`
	TLSClientKey      string  `json:"tls_client_key,omitempty"      yaml:"tls_client_key,omitempty"`
	TLSHostname       string  `json:"tls_hostname,omitempty"        yaml:"tls_hostname,omitempty"`
}

// CreateHTTPSInput is the form body for creating an HTTPS endpoint.
type CreateHTTPSInput struct {
	VersionTarget      `yaml:"-"`
	LoggingCommonInput `yaml:",inline"`

	Name              *string `url:"name,omitempty"                yaml:"name,omitempty"`
	URL               *string `url:"url,omitempty"                 yaml:"url,omitempty"`
	Method            *string `url:"method,omitempty"              yaml:"method,omitempty"`
	ContentType       *string `url:"content_type,omitempty"        yaml:"content_type,omitempty"`
	HeaderName        *string `url:"header_name,omitempty"         yaml:"header_name,omitempty"`
	HeaderValue       *string `url:"header_value,omitempty"        yaml:"header_value,omitempty"`
	JSONFormat        *string `url:"json_format,omitempty"         yaml:"json_format,omitempty"`
	MessageType       *string `url:"message_type,omitempty"        yaml:"message_type,omitempty"`
	RequestMaxEntries *int    `url:"request_max_entries,omitempty" yaml:"request_max_entries,omitempty"`
	RequestMaxBytes   *int    `url:"request_max_bytes,omitempty"   yaml:"request_max_bytes,omitempty"`
	TLSCACert         *string `url:"tls_ca_cert,omitempty"         yaml:"tls_ca_cert,omitempty"`
	TLSClientCert     *string `url:"tls_client_cert,omitempty"     yaml:"tls_client_cert,omitempty"`
	TLSClientKey      *string `url:"tls_client_key,omitempty"      yaml:"tls_client_key,omitempty"`
	TLSHostname       *string `url:"tls_hostname,omitempty"        yaml:"tls_hostname,omitempty"`
}

// UpdateHTTPSInput is the form body for updating an HTTPS endpoint.
type UpdateHTTPSInput struct {
	EndpointTarget     `yaml:"-"`
	LoggingCommonInput `yaml:",inline"`

	NewName           *string `url:"name,omitempty"                yaml:"name,omitempty"`
	URL               *string `url:"url,omitempty"                 yaml:"url,omitempty"`
	Method            *string `url:"method,omitempty"              yaml:"method,omitempty"`
	ContentType       *string `url:"content_type,omitempty"        yaml:"content_type,omitempty"`
	HeaderName        *string `url:"header_name,omitempty"         yaml:"header_name,omitempty"`
	HeaderValue       *string `url:"header_value,omitempty"        yaml:"header_value,omitempty"`
	JSONFormat        *string `url:"json_format,omitempty"         yaml:"json_format,omitempty"`
	MessageType       *string `url:"message_type,omitempty"        yaml:"message_type,omitempty"`
	RequestMaxEntries *int    `url:"request_max_entries,omitempty" yaml:"request_max_entries,omitempty"`
	RequestMaxBytes   *int    `url:"request_max_bytes,omitempty"   yaml:"request_max_bytes,omitempty"`
	TLSCACert         *string `url:"tls_ca_cert,omitempty"         yaml:"tls_ca_cert,omitempty"`
	TLSClientCert     *string `url:"tls_client_cert,omitempty"     yaml:"tls_client_cert,omitempty"`
	TLSClientKey      *string `url:"tls_client_key,omitempty"      yaml:"tls_client_key,omitempty"`
	TLSHostname       *string `url:"tls_hostname,omitempty"        yaml:"tls_hostname,omitempty"`
}

// LoggingSyslog is a syslog logging endpoint.
type LoggingSyslog struct {
	LoggingCommon `yaml:",inline"`

	Address     string  `json:"address,omitempty"      yaml:"address,omitempty"`
	Hostname    string  `json:"hostname,omitempty"     yaml:"hostname,omitempty"`
	IPv4        string  `json:"ipv4,omitempty"         yaml:"ipv4,omitempty"`
	Port        FlexInt `json:"port,omitempty"         yaml:"port,omitempty"`
	Token       string  `json:"token,omitempty"        yaml:"token,omitempty"`
	MessageType string  `json:"message_type,omitempty" yaml:"message_type,omitempty"`
	UseTLS      FlexInt `json:"use_tls,omitempty"      yaml:"use_tls,omitempty"`
	TLSCACert   string  `json:"tls_ca_cert,omitempty"  yaml:"tls_ca_cert,omitempty"`
	TLSHostname string  `json:"tls_hostname,omitempty" yaml:"tls_hostname,omitempty"`
}

// CreateSyslogInput is the form body for creating a syslog endpoint.
type CreateSyslogInput struct {
	VersionTarget      `yaml:"-"`
	LoggingCommonInput `yaml:",inline"`

	Name        *string `url:"name,omitempty"         yaml:"name,omitempty"`
	Address     *string `url:"address,omitempty"      yaml:"address,omitempty"`
	Port        *int    `url:"port,omitempty"         yaml:"port,omitempty"`
	Token       *string `url:"token,omitempty"        yaml:"token,omitempty"`
	MessageType *string `url:"message_type,omitempty" yaml:"message_type,omitempty"`
	UseTLS      *bool   `url:"use_tls,int,omitempty"  yaml:"use_tls,omitempty"`
	TLSCACert   *string `url:"tls_ca_cert,omitempty"  yaml:"tls_ca_cert,omitempty"`
	TLSHostname *string `url:"tls_hostname,omitempty" yaml:"tls_hostname,omitempty"`
}

// UpdateSyslogInput is the form body for updating a syslog endpoint.
type UpdateSyslogInput struct {
	EndpointTarget     `yaml:"-"`
	LoggingCommonInput `yaml:",inline"`

	NewName     *string `url:"name,omitempty"         yaml:"name,omitempty"`
	Address     *string `url:"address,omitempty"      yaml:"address,omitempty"`
	Port        *int    `url:"port,omitempty"         yaml:"port,omitempty"`
	Token       *string `url:"token,omitempty"        yaml:"token,omitempty"`
	MessageType *string `url:"message_type,omitempty" yaml:"message_type,omitempty"`
	UseTLS      *bool   `url:"use_tls,int,omitempty"  yaml:"use_tls,omitempty"`
	TLSCACert   *string `url:"tls_ca_cert,omitempty"  yaml:"tls_ca_cert,omitempty"`
	TLSHostname *string `url:"tls_hostname,omitempty" yaml:"tls_hostname,omitempty"`
}
